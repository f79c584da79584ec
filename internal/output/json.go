package output

import (
	"encoding/json"
	"io"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// JSONFormatter writes a scan report as a single indented JSON object.
// A clean scan still carries "documents": [] so consumers can range over it
// without a null check.
type JSONFormatter struct{}

// Write renders the full report.
func (f *JSONFormatter) Write(w io.Writer, report *types.ScanReport) error {
	out := *report
	if out.Documents == nil {
		out.Documents = []types.DocumentResult{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(&out)
}
