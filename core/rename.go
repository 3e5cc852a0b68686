package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/ctexpand/schema"
)

// RenameAttribute relabels one attribute of an expanded table. Values and row
// order are untouched and the input is not modified; the returned table shares
// its rows with the input.
func RenameAttribute(table schema.Expanded, oldName, newName string) (schema.Expanded, error) {
	idx := schema.AttributeIndex(table.Attributes, oldName)
	if idx < 0 {
		return schema.Expanded{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownAttribute, oldName, strings.Join(table.Attributes, ", "))
	}
	if strings.TrimSpace(newName) == "" {
		return schema.Expanded{}, fmt.Errorf("%w: new name for %q is empty", ErrInvalidTable, oldName)
	}
	if other := schema.AttributeIndex(table.Attributes, newName); other >= 0 && other != idx {
		return schema.Expanded{}, fmt.Errorf("%w: %q already names column %d", ErrDuplicateAttribute, newName, other+1)
	}

	attrs := slices.Clone(table.Attributes)
	attrs[idx] = newName
	return schema.Expanded{Attributes: attrs, Rows: table.Rows}, nil
}
