package output

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// MarkdownFormatter writes the report as GitHub Flavored Markdown, suitable
// for attaching to a ticket or a wiki page.
type MarkdownFormatter struct{}

// Write renders the report in Markdown.
func (f *MarkdownFormatter) Write(w io.Writer, report *types.ScanReport) error {
	md := markdown.NewMarkdown(w)

	f.writeHeader(md, report)
	f.writeDocuments(md, report)
	f.writeFailures(md, report)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by brokenlayers %s*", report.Version)

	return md.Build()
}

func (f *MarkdownFormatter) writeHeader(md *markdown.Markdown, r *types.ScanReport) {
	md.H1("Broken Layers Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + r.Root + "`"},
			{"Scan Date", r.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Host", r.Host.Hostname},
			{"Run ID", r.RunID},
			{"Documents Checked", strconv.Itoa(r.Summary.DocumentsChecked)},
			{"Documents With Broken Layers", strconv.Itoa(r.Summary.DocumentsBroken)},
			{"Broken Layers", strconv.Itoa(r.Summary.BrokenLinks)},
			{"Unreadable Documents", strconv.Itoa(r.Summary.Failed)},
		},
	})
	md.PlainText("")

	if r.HasFindings() {
		md.Warningf("%d broken layer(s) found in %d document(s).", r.Summary.BrokenLinks, r.Summary.DocumentsBroken)
	} else {
		md.Tip("No broken layers found.")
	}
	md.PlainText("")
}

func (f *MarkdownFormatter) writeDocuments(md *markdown.Markdown, r *types.ScanReport) {
	if !r.HasFindings() {
		return
	}
	md.H2(ReportHeader)
	md.PlainText("")

	for _, doc := range r.Documents {
		md.PlainText("**`" + doc.Path + "`**")
		md.PlainText("")
		items := make([]string, 0, len(doc.BrokenLinks))
		for _, link := range doc.BrokenLinks {
			item := link.Name
			if link.DataSource != "" {
				item += " (`" + link.DataSource + "`)"
			}
			items = append(items, item)
		}
		md.BulletList(items...)
		md.PlainText("")
	}
}

func (f *MarkdownFormatter) writeFailures(md *markdown.Markdown, r *types.ScanReport) {
	if len(r.Failures) == 0 {
		return
	}
	md.H2("Unreadable Documents")
	md.PlainText("")

	rows := make([][]string, len(r.Failures))
	for i, fail := range r.Failures {
		rows[i] = []string{"`" + fail.Path + "`", fail.Error}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Document", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}
