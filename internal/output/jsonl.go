package output

import (
	"encoding/json"
	"io"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// JSONLFormatter writes scan results as newline-delimited JSON (one object per line).
// The first line is a header with host and summary information, followed by
// one line per document with findings and one per unreadable document.
type JSONLFormatter struct{}

// Write renders the scan as JSONL.
func (f *JSONLFormatter) Write(w io.Writer, report *types.ScanReport) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	header := struct {
		Type      string            `json:"type"`
		RunID     string            `json:"run_id"`
		Version   string            `json:"version"`
		Timestamp string            `json:"timestamp"`
		Root      string            `json:"root"`
		Host      types.HostInfo    `json:"host"`
		Summary   types.ScanSummary `json:"summary"`
	}{
		Type:      "header",
		RunID:     report.RunID,
		Version:   report.Version,
		Timestamp: report.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Root:      report.Root,
		Host:      report.Host,
		Summary:   report.Summary,
	}
	if err := enc.Encode(header); err != nil {
		return err
	}

	for _, doc := range report.Documents {
		line := struct {
			Type     string               `json:"type"`
			Document types.DocumentResult `json:"document"`
		}{
			Type:     "document",
			Document: doc,
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	for _, fail := range report.Failures {
		line := struct {
			Type    string                `json:"type"`
			Failure types.DocumentFailure `json:"failure"`
		}{
			Type:    "failure",
			Failure: fail,
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	return nil
}
