// Package schema has configs, models and global variables for all parts of ctexpand.
package schema

// Record is one row of a summarized contingency table: a combination of
// categorical values paired with the number of units observed for it.
type Record struct {
	Values []string `json:"values"` // One value per attribute, in attribute order
	Freq   int      `json:"freq"`   // Non-negative number of units with this combination
}

// Summarized is a contingency table in summarized form. Each record carries a
// unique combination of attribute values plus a frequency count.
type Summarized struct {
	Name       string   `json:"name"`       // Dataset name or source path
	Attributes []string `json:"attributes"` // Categorical attribute names, in column order
	Records    []Record `json:"records"`    // Records in iteration order
}

// Expanded is a contingency table in expanded form: one row per unit of
// observation and no count column.
type Expanded struct {
	Attributes []string   `json:"attributes"`
	Rows       [][]string `json:"rows"`
}

// CellCount compares the expected and observed counts for one combination.
type CellCount struct {
	Key      Key      `json:"-"`
	Values   []string `json:"values"`
	Expected int      `json:"expected"`
	Observed int      `json:"observed"`
}

// VerifyReport describes the outcome of a round-trip verification.
type VerifyReport struct {
	Passed             bool        `json:"passed"`
	AttributesMatch    bool        `json:"attributes_match"`
	ExpectedAttributes []string    `json:"expected_attributes"`
	ObservedAttributes []string    `json:"observed_attributes"`
	ExpectedTotal      int         `json:"expected_total"`
	ObservedTotal      int         `json:"observed_total"`
	Cells              []CellCount `json:"cells"`              // Every combination from either side, summarized order first
	Mismatched         []CellCount `json:"mismatched"`         // Present on both sides with different counts
	Missing            []CellCount `json:"missing"`            // Expected with Freq > 0 but absent from the expansion
	Extra              []CellCount `json:"extra"`              // Present in the expansion but unknown to the summary
}

// ExpandResult bundles everything produced by one run of the pipeline.
type ExpandResult struct {
	Source     string       `json:"source"`
	Summarized Summarized   `json:"-"`
	Expanded   Expanded     `json:"-"`
	Report     VerifyReport `json:"report"`
	Renamed    [2]string    `json:"renamed"` // Old and new attribute label, empty when no rename applied
}

// MarginalTotal is the total count for one level of one attribute.
type MarginalTotal struct {
	Attribute string `json:"attribute"`
	Level     string `json:"level"`
	Count     int    `json:"count"`
}
