// Package checker binds the external GIS toolkit that detects broken
// data-source links inside map documents.
//
// The toolkit is closed: brokenlayers never parses a map document itself.
// A Checker either runs the toolkit as a child process (ExecChecker) or
// replays results exported from it earlier (ManifestChecker).
package checker

import (
	"context"
	"errors"
	"fmt"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

var (
	// ErrNoChecker is returned when a document must be checked but neither a
	// checker command nor a manifest was configured.
	ErrNoChecker = errors.New("no link checker configured (set --checker or --manifest)")

	// ErrOpenDocument wraps every failure to open or inspect a map document.
	ErrOpenDocument = errors.New("cannot open map document")
)

// Checker returns the broken data-source links of one map document.
// An empty result means the document has no broken links.
type Checker interface {
	BrokenLinks(ctx context.Context, path string) ([]types.BrokenLink, error)
}

// Func adapts an ordinary function to the Checker interface.
type Func func(ctx context.Context, path string) ([]types.BrokenLink, error)

// BrokenLinks calls f(ctx, path).
func (f Func) BrokenLinks(ctx context.Context, path string) ([]types.BrokenLink, error) {
	return f(ctx, path)
}

// Unconfigured fails every call with ErrNoChecker.
// Trees without map documents still scan cleanly with it.
type Unconfigured struct{}

// BrokenLinks always fails.
func (Unconfigured) BrokenLinks(_ context.Context, path string) ([]types.BrokenLink, error) {
	return nil, openError(path, ErrNoChecker)
}

func openError(path string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrOpenDocument, path, err)
}
