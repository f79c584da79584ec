package types

import "time"

// ScanReport is the top-level structure for a complete scan of one tree.
// It is serialized directly to JSON for the --print=json output.
type ScanReport struct {
	// RunID identifies the run in logs and machine-readable output.
	RunID string `json:"run_id"`

	// Version is the brokenlayers version that produced this report.
	Version string `json:"version"`

	// Timestamp is when the scan started.
	Timestamp time.Time `json:"timestamp"`

	// Root is the directory tree that was scanned.
	Root string `json:"root"`

	// Host describes the machine the scan ran on.
	Host HostInfo `json:"host"`

	// Summary provides aggregate statistics.
	Summary ScanSummary `json:"summary"`

	// Documents lists documents with at least one broken link, in walk order.
	Documents []DocumentResult `json:"documents"`

	// Failures lists documents that could not be opened, in walk order.
	Failures []DocumentFailure `json:"failures,omitempty"`

	// SkippedDirs lists subdirectories the walk could not read.
	SkippedDirs []DocumentFailure `json:"skipped_dirs,omitempty"`
}

// ScanSummary provides aggregate statistics for a scan.
type ScanSummary struct {
	// DocumentsChecked is the number of map documents handed to the checker.
	DocumentsChecked int `json:"documents_checked"`

	// DocumentsBroken is the number of documents with at least one broken link.
	DocumentsBroken int `json:"documents_broken"`

	// BrokenLinks is the total number of broken links across all documents.
	BrokenLinks int `json:"broken_links"`

	// Failed is the number of documents that could not be opened.
	Failed int `json:"failed"`

	// DurationMS is the total scan duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`
}

// HasFindings reports whether any document had a broken link.
func (r *ScanReport) HasFindings() bool {
	return r != nil && len(r.Documents) > 0
}
