package core

import (
	"testing"

	"github.com/huangsam/ctexpand/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ucbStyleExpanded() schema.Expanded {
	return schema.Expanded{
		Attributes: []string{"Admit", "Gender", "Dept"},
		Rows: [][]string{
			{"Admitted", "Male", "A"},
			{"Rejected", "Female", "B"},
		},
	}
}

func TestRenameAttribute(t *testing.T) {
	input := ucbStyleExpanded()

	renamed, err := RenameAttribute(input, "Gender", "Sex")
	require.NoError(t, err)

	assert.Equal(t, []string{"Admit", "Sex", "Dept"}, renamed.Attributes)
	assert.Equal(t, input.Rows, renamed.Rows)
	assert.Equal(t, []string{"Admit", "Gender", "Dept"}, input.Attributes, "input must not be modified")
}

func TestRenameAttribute_Inverse(t *testing.T) {
	input := ucbStyleExpanded()

	there, err := RenameAttribute(input, "Gender", "Sex")
	require.NoError(t, err)
	back, err := RenameAttribute(there, "Sex", "Gender")
	require.NoError(t, err)

	assert.Equal(t, input, back)
}

func TestRenameAttribute_SameName(t *testing.T) {
	input := ucbStyleExpanded()
	renamed, err := RenameAttribute(input, "Dept", "Dept")
	require.NoError(t, err)
	assert.Equal(t, input, renamed)
}

func TestRenameAttribute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		oldName string
		newName string
		wantErr error
	}{
		{"unknown attribute", "Sex", "Gender", ErrUnknownAttribute},
		{"case sensitive", "gender", "Sex", ErrUnknownAttribute},
		{"collision", "Gender", "Dept", ErrDuplicateAttribute},
		{"empty new name", "Gender", "", ErrInvalidTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenameAttribute(ucbStyleExpanded(), tt.oldName, tt.newName)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
