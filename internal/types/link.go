// Package types defines the data structures shared across brokenlayers packages.
package types

// DocumentSuffix is the file name suffix identifying a map document.
// Matching is case-sensitive.
const DocumentSuffix = ".mxd"

// BrokenLink is a data-source link inside a map document that no longer resolves.
type BrokenLink struct {
	// Name is the layer or table display name as reported by the toolkit.
	Name string `json:"name" yaml:"name"`

	// DataSource is the unresolved data-source path, when the toolkit reports one.
	DataSource string `json:"data_source,omitempty" yaml:"data_source,omitempty"`
}

// DocumentResult holds the broken links found in a single map document.
type DocumentResult struct {
	// Path is the document path as yielded by the directory walk.
	Path string `json:"path"`

	// BrokenLinks lists the broken links in the order the checker returned them.
	BrokenLinks []BrokenLink `json:"broken_links"`
}

// DocumentFailure records a document the checker could not open.
// Failures are only collected when the run continues past open errors.
type DocumentFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}
