package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format string
		want   Formatter
	}{
		{FormatText, &TextFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatJSONL, &JSONLFormatter{}},
		{FormatMarkdown, &MarkdownFormatter{}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := NewFormatter(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}

func TestNewFormatter_Unknown(t *testing.T) {
	_, err := NewFormatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}
