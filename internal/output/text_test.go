package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Disable color for deterministic test output.
	color.NoColor = true
}

// ─── RenderText ──────────────────────────────────────────────────────

func TestRenderText_ScenarioA(t *testing.T) {
	report := newTestReport()
	report.Documents = report.Documents[:1]

	text, ok := RenderText(report)

	require.True(t, ok)
	assert.Equal(t, "Documents with broken layers found\n\nmaps/docB.mxd\n\tRoads\n\tParcels\n", text)
}

func TestRenderText_MultipleDocumentsInOrder(t *testing.T) {
	text, ok := RenderText(newTestReport())

	require.True(t, ok)
	assert.Equal(t,
		"Documents with broken layers found\n"+
			"\nmaps/docB.mxd\n\tRoads\n\tParcels\n"+
			"\nmaps/sub/docC.mxd\n\tHydrants\n",
		text)
}

func TestRenderText_NoFindings(t *testing.T) {
	text, ok := RenderText(newEmptyReport())

	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestRenderText_FailuresAreNotFindings(t *testing.T) {
	report := newEmptyReport()
	report.Failures = newFailureReport().Failures

	_, ok := RenderText(report)

	assert.False(t, ok)
}

func TestRenderText_NoDeduplication(t *testing.T) {
	report := newTestReport()
	report.Documents = report.Documents[1:]
	report.Documents[0].BrokenLinks = append(report.Documents[0].BrokenLinks, report.Documents[0].BrokenLinks[0])

	text, _ := RenderText(report)

	assert.Equal(t, "Documents with broken layers found\n\nmaps/sub/docC.mxd\n\tHydrants\n\tHydrants\n", text)
}

// ─── TextFormatter ───────────────────────────────────────────────────

func TestTextFormatter_MatchesRenderText(t *testing.T) {
	report := newTestReport()
	var buf bytes.Buffer

	require.NoError(t, (&TextFormatter{}).Write(&buf, report))

	want, _ := RenderText(report)
	assert.Equal(t, want, buf.String())
}

func TestTextFormatter_NoFindings(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, (&TextFormatter{}).Write(&buf, newEmptyReport()))

	assert.Equal(t, "No broken layers found\n", buf.String())
}

func TestTextFormatter_ShowFailures(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, (&TextFormatter{ShowFailures: true}).Write(&buf, newFailureReport()))

	out := buf.String()
	assert.Contains(t, out, "Documents that could not be opened")
	assert.Contains(t, out, "maps/locked.mxd\n\tdocument is locked\n")
}

func TestTextFormatter_HidesFailuresByDefault(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, (&TextFormatter{}).Write(&buf, newFailureReport()))

	assert.NotContains(t, buf.String(), "locked")
}

func TestIsDumbTerm(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.True(t, IsDumbTerm())
	t.Setenv("TERM", "")
	assert.True(t, IsDumbTerm())
	t.Setenv("TERM", "xterm-256color")
	assert.False(t, IsDumbTerm())
}
