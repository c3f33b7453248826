package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatText, true},
		{FormatYAML, true},
		{FormatJSON, true},
		{OutputFormat("table"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
		valid bool
	}{
		{"text", FormatText, true},
		{"yaml", FormatYAML, true},
		{"YML", FormatYAML, true},
		{"JSON", FormatJSON, true},
		{"table", OutputFormat("table"), false},
		{"", OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, valid := ParseOutputFormat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestWriteList(t *testing.T) {
	items := []string{"B", "A", "C"}

	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "B\nA\nC\n"},
		{FormatYAML, "order:\n- B\n- A\n- C\n"},
		{FormatJSON, "{\n  \"order\": [\n    \"B\",\n    \"A\",\n    \"C\"\n  ]\n}\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteList(&buf, tt.format, "order", items))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteList_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, FormatJSON, "order", nil))
	assert.Equal(t, "{\n  \"order\": []\n}\n", buf.String())
}

func TestWriteList_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := WriteList(&buf, OutputFormat("table"), "order", nil)
	assert.ErrorContains(t, err, "unsupported output format")
}
