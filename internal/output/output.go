// Package output renders scan reports and writes the dated broken-layer log.
package output

import (
	"fmt"
	"io"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// Formatter writes a scan report to the given writer.
type Formatter interface {
	Write(w io.Writer, report *types.ScanReport) error
}

// Print formats accepted by NewFormatter.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatJSONL    = "jsonl"
	FormatMarkdown = "markdown"
)

// NewFormatter returns the formatter for a --print value.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case FormatText:
		return &TextFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatJSONL:
		return &JSONLFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be text, json, jsonl, or markdown)", format)
	}
}
