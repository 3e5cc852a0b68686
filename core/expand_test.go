package core

import (
	"math"
	"testing"

	"github.com/huangsam/ctexpand/internal/dataset"
	"github.com/huangsam/ctexpand/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// admissionsSample is the two-record table used throughout the core tests.
func admissionsSample() schema.Summarized {
	return schema.Summarized{
		Name:       "sample",
		Attributes: []string{"Admit", "Sex", "Dept"},
		Records: []schema.Record{
			{Values: []string{"Admitted", "Male", "A"}, Freq: 2},
			{Values: []string{"Rejected", "Female", "A"}, Freq: 1},
		},
	}
}

func TestExpand_ConcreteScenario(t *testing.T) {
	table := admissionsSample()

	expanded, err := Expand(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"Admit", "Sex", "Dept"}, expanded.Attributes)
	assert.Equal(t, [][]string{
		{"Admitted", "Male", "A"},
		{"Admitted", "Male", "A"},
		{"Rejected", "Female", "A"},
	}, expanded.Rows)
	assert.True(t, VerifyRoundtrip(expanded, table))
}

func TestExpand_RowCountConservation(t *testing.T) {
	ucb, ok := dataset.Builtin(dataset.UCBAdmissionsName)
	require.True(t, ok)

	tests := []struct {
		name  string
		table schema.Summarized
		want  int
	}{
		{"sample", admissionsSample(), 3},
		{"ucb admissions", ucb, 4526},
		{"empty records", schema.Summarized{Attributes: []string{"A"}}, 0},
		{"all zero", schema.Summarized{
			Attributes: []string{"A"},
			Records:    []schema.Record{{Values: []string{"x"}, Freq: 0}, {Values: []string{"y"}, Freq: 0}},
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expanded, err := Expand(tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expanded.Len())
			assert.Equal(t, tt.table.Total(), expanded.Len())
		})
	}
}

func TestExpand_ZeroCountContributesNothing(t *testing.T) {
	table := schema.Summarized{
		Attributes: []string{"Admit", "Dept"},
		Records: []schema.Record{
			{Values: []string{"Admitted", "A"}, Freq: 1},
			{Values: []string{"Rejected", "A"}, Freq: 0},
			{Values: []string{"Admitted", "B"}, Freq: 2},
		},
	}

	expanded, err := Expand(table)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Admitted", "A"}, {"Admitted", "B"}, {"Admitted", "B"}}, expanded.Rows)
	assert.NotContains(t, Aggregate(expanded), schema.NewKey([]string{"Rejected", "A"}))
	assert.True(t, VerifyRoundtrip(expanded, table))
}

func TestExpand_ZeroCountRecordsDoNotChangeOutput(t *testing.T) {
	withZero := schema.Summarized{
		Attributes: []string{"Admit", "Dept"},
		Records: []schema.Record{
			{Values: []string{"Rejected", "C"}, Freq: 0},
			{Values: []string{"Admitted", "A"}, Freq: 1},
			{Values: []string{"Rejected", "A"}, Freq: 0},
			{Values: []string{"Admitted", "B"}, Freq: 2},
			{Values: []string{"Rejected", "B"}, Freq: 0},
		},
	}
	withoutZero := schema.Summarized{
		Attributes: withZero.Attributes,
		Records: []schema.Record{
			{Values: []string{"Admitted", "A"}, Freq: 1},
			{Values: []string{"Admitted", "B"}, Freq: 2},
		},
	}

	left, err := Expand(withZero)
	require.NoError(t, err)
	right, err := Expand(withoutZero)
	require.NoError(t, err)

	assert.Equal(t, right.Attributes, left.Attributes)
	assert.Equal(t, right.Rows, left.Rows)
	assert.True(t, VerifyRoundtrip(left, withoutZero))
	assert.True(t, VerifyRoundtrip(right, withZero))
}

func TestExpand_ReplicasAreIndependent(t *testing.T) {
	table := admissionsSample()
	expanded, err := Expand(table)
	require.NoError(t, err)

	expanded.Rows[0][0] = "Changed"
	assert.Equal(t, "Admitted", expanded.Rows[1][0])
	assert.Equal(t, "Admitted", table.Records[0].Values[0])
}

func TestExpand_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		table schema.Summarized
		msg   string
	}{
		{
			name:  "no attributes",
			table: schema.Summarized{},
			msg:   "no attributes",
		},
		{
			name:  "empty attribute name",
			table: schema.Summarized{Attributes: []string{"Admit", " "}},
			msg:   "empty name",
		},
		{
			name:  "duplicate attribute",
			table: schema.Summarized{Attributes: []string{"Dept", "Dept"}},
			msg:   `"Dept"`,
		},
		{
			name: "negative frequency",
			table: schema.Summarized{
				Attributes: []string{"Admit"},
				Records:    []schema.Record{{Values: []string{"Admitted"}, Freq: 1}, {Values: []string{"Rejected"}, Freq: -1}},
			},
			msg: "record 2 (Rejected) has negative frequency -1",
		},
		{
			name: "ragged record",
			table: schema.Summarized{
				Attributes: []string{"Admit", "Dept"},
				Records:    []schema.Record{{Values: []string{"Admitted"}, Freq: 1}},
			},
			msg: "record 1 has 1 values, expected 2",
		},
		{
			name: "duplicate combination",
			table: schema.Summarized{
				Attributes: []string{"Admit", "Dept"},
				Records: []schema.Record{
					{Values: []string{"Admitted", "A"}, Freq: 1},
					{Values: []string{"Admitted", "A"}, Freq: 4},
				},
			},
			msg: "record 2 repeats combination Admitted/A from record 1",
		},
		{
			name: "population overflows int",
			table: schema.Summarized{
				Attributes: []string{"a"},
				Records: []schema.Record{
					{Values: []string{"x"}, Freq: math.MaxInt},
					{Values: []string{"y"}, Freq: 1},
				},
			},
			msg: "brings the population past",
		},
		{
			name: "population past row cap",
			table: schema.Summarized{
				Attributes: []string{"a"},
				Records: []schema.Record{
					{Values: []string{"x"}, Freq: schema.MaxExpandedRows},
					{Values: []string{"y"}, Freq: 1},
				},
			},
			msg: "record 2 (y) brings the population past",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var expanded schema.Expanded
			var err error
			require.NotPanics(t, func() { expanded, err = Expand(tt.table) })
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Zero(t, expanded.Len())
		})
	}
}

func TestValidate_SeparatorCollision(t *testing.T) {
	// Values that would collide under a naive join are distinct combinations
	table := schema.Summarized{
		Attributes: []string{"A", "B"},
		Records: []schema.Record{
			{Values: []string{"x/y", "z"}, Freq: 1},
			{Values: []string{"x", "y/z"}, Freq: 1},
		},
	}
	assert.NoError(t, Validate(table))

	expanded, err := Expand(table)
	require.NoError(t, err)
	assert.Len(t, Aggregate(expanded), 2)
}
