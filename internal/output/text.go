package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// ReportHeader is the first line of every non-empty text report.
const ReportHeader = "Documents with broken layers found"

// RenderText builds the plain-text report: the header line, then for each
// document with findings a blank line, its path, and one tab-indented line
// per broken link. ok is false when there is nothing to report.
func RenderText(report *types.ScanReport) (text string, ok bool) {
	if !report.HasFindings() {
		return "", false
	}

	var b strings.Builder
	b.WriteString(ReportHeader)
	b.WriteByte('\n')
	for _, doc := range report.Documents {
		fmt.Fprintf(&b, "\n%s\n", doc.Path)
		for _, link := range doc.BrokenLinks {
			fmt.Fprintf(&b, "\t%s\n", link.Name)
		}
	}
	return b.String(), true
}

// Color helpers. They print plain text while color.NoColor is set.
var (
	cBold   = color.New(color.Bold).SprintFunc()
	cCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
)

// IsDumbTerm returns true when the terminal doesn't support Unicode.
func IsDumbTerm() bool {
	t := os.Getenv("TERM")
	return t == "dumb" || t == ""
}

// TextFormatter writes the report in the log file layout. With colors
// enabled the header, paths and layer names are highlighted; the bytes are
// otherwise identical to RenderText.
type TextFormatter struct {
	// ShowFailures appends unreadable documents after the report.
	ShowFailures bool
}

// Write renders the text report, or a one-line notice when it is empty.
func (f *TextFormatter) Write(w io.Writer, report *types.ScanReport) error {
	if !report.HasFindings() {
		if _, err := fmt.Fprintln(w, cGreen("No broken layers found")); err != nil {
			return err
		}
		return f.writeFailures(w, report)
	}

	if _, err := fmt.Fprintln(w, cBold(ReportHeader)); err != nil {
		return err
	}
	for _, doc := range report.Documents {
		if _, err := fmt.Fprintf(w, "\n%s\n", cCyan(doc.Path)); err != nil {
			return err
		}
		for _, link := range doc.BrokenLinks {
			if _, err := fmt.Fprintf(w, "\t%s\n", cYellow(link.Name)); err != nil {
				return err
			}
		}
	}
	return f.writeFailures(w, report)
}

func (f *TextFormatter) writeFailures(w io.Writer, report *types.ScanReport) error {
	if !f.ShowFailures || len(report.Failures) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", cBold("Documents that could not be opened")); err != nil {
		return err
	}
	for _, fail := range report.Failures {
		if _, err := fmt.Fprintf(w, "\n%s\n\t%s\n", cCyan(fail.Path), cDim(fail.Error)); err != nil {
			return err
		}
	}
	return nil
}
