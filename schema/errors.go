package schema

import "errors"

// ErrInvalidTable marks input that violates the summarized-table invariants:
// missing or duplicate attributes, ragged records, negative or non-integer
// frequencies and repeated combinations.
var ErrInvalidTable = errors.New("invalid contingency table")
