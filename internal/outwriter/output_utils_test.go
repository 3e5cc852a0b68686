package outwriter

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/ctexpand/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name: "simple object",
			data: map[string]any{
				"name":  "test",
				"value": 42,
			},
			expected: `{
  "name": "test",
  "value": 42
}
`,
		},
		{
			name: "array",
			data: []string{"a", "b", "c"},
			expected: `[
  "a",
  "b",
  "c"
]
`,
		},
		{
			name:     "string",
			data:     "hello",
			expected: `"hello"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeJSON(&buf, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	// Test with a value that can't be marshaled to JSON
	invalidData := make(chan int)
	var buf bytes.Buffer
	err := writeJSON(&buf, invalidData)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestQuotedWriter(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected string
	}{
		{
			name:     "every field quoted",
			rows:     [][]string{{"Admit", "Sex"}, {"Admitted", "Male"}},
			expected: "\"Admit\",\"Sex\"\n\"Admitted\",\"Male\"\n",
		},
		{
			name:     "embedded quotes doubled",
			rows:     [][]string{{`say "hi"`}},
			expected: "\"say \"\"hi\"\"\"\n",
		},
		{
			name:     "commas and newlines kept inside quotes",
			rows:     [][]string{{"a,b", "c\nd"}},
			expected: "\"a,b\",\"c\nd\"\n",
		},
		{
			name:     "empty field",
			rows:     [][]string{{"", "x"}},
			expected: "\"\",\"x\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			qw := newQuotedWriter(&buf)
			for _, row := range tt.rows {
				require.NoError(t, qw.Write(row))
			}
			require.NoError(t, qw.Flush())
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteWithFileStdout(t *testing.T) {
	// Test writing to stdout (empty string means stdout)
	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		_, err := w.Write([]byte(""))
		return err
	}, "Test message")

	require.NoError(t, err)
	assert.True(t, called, "Writer function should have been called")
}

func TestWriteWithFileActualFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	testContent := "test content"
	err := writeWithFile(tmpFile, func(w io.Writer) error {
		_, err := w.Write([]byte(testContent))
		return err
	}, "Test message")

	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, string(content))
}

func TestWriteWithFileError(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	err := writeWithFile(tmpFile, func(io.Writer) error {
		return assert.AnError
	}, "Test message")

	require.Error(t, err)
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileInvalidPath(t *testing.T) {
	err := writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error {
		return nil
	}, "Test message")

	require.Error(t, err)
}

func TestFitValues(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, fitValues([]string{"a", "b"}, 2))
	assert.Equal(t, []string{"a/b/c", ""}, fitValues([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a", "", ""}, fitValues([]string{"a"}, 3))
	assert.Empty(t, fitValues([]string{"a"}, 0))
}

func TestMaxCellWidth(t *testing.T) {
	cfg := &contract.Config{Width: 100}
	assert.Equal(t, 21, maxCellWidth(cfg, 4))
	assert.Equal(t, 96, maxCellWidth(cfg, 0))

	narrow := &contract.Config{Width: 20}
	assert.Equal(t, 8, maxCellWidth(narrow, 5))
}
