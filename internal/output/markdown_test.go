package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownFormatter_WithFindings(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, (&MarkdownFormatter{}).Write(&buf, newFailureReport()))

	out := buf.String()
	assert.Contains(t, out, "# Broken Layers Report")
	assert.Contains(t, out, "## "+ReportHeader)
	assert.Contains(t, out, "`maps/docB.mxd`")
	assert.Contains(t, out, "Roads (`D:\\data\\roads.shp`)")
	assert.Contains(t, out, "Parcels")
	assert.Contains(t, out, "## Unreadable Documents")
	assert.Contains(t, out, "document is locked")
	assert.Contains(t, out, "gis-01")
	assert.Contains(t, out, "3f2c9a4e-7d1b-4c55-9a0e-2b8f6d4e1c7a")
	assert.Contains(t, out, "brokenlayers 1.0.0")
}

func TestMarkdownFormatter_Clean(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, (&MarkdownFormatter{}).Write(&buf, newEmptyReport()))

	out := buf.String()
	assert.Contains(t, out, "No broken layers found.")
	assert.NotContains(t, out, "## "+ReportHeader)
	assert.NotContains(t, out, "## Unreadable Documents")
}

func TestMarkdownFormatter_DocumentOrder(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, (&MarkdownFormatter{}).Write(&buf, newTestReport()))

	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("docB.mxd")), bytes.Index([]byte(out), []byte("docC.mxd")))
}
