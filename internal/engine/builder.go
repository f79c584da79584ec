// Package engine locates map documents under a root directory and runs the
// link checker over each one to build the broken-layer report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ancients-collective/brokenlayers/internal/checker"
	"github.com/ancients-collective/brokenlayers/internal/output"
	"github.com/ancients-collective/brokenlayers/internal/types"
)

// ErrorMode decides what happens when a document cannot be opened.
type ErrorMode string

const (
	// ErrorModeAbort stops the scan at the first unreadable document.
	ErrorModeAbort ErrorMode = "abort"
	// ErrorModeSkip records the failure and moves on to the next document.
	ErrorModeSkip ErrorMode = "skip"
)

// Builder runs a Checker over every document under a root.
type Builder struct {
	checker checker.Checker
	logger  *zap.Logger

	// OnError selects abort (default) or skip behavior for unreadable documents.
	OnError ErrorMode

	// Version and Host are copied into every ScanReport.
	Version string
	Host    types.HostInfo

	now    func() time.Time
	newID  func() string
	locate func(root string) iter.Seq2[string, error]
}

// NewBuilder creates a Builder that aborts on the first unreadable document.
// A nil logger discards log output.
func NewBuilder(c checker.Checker, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		checker: c,
		logger:  logger,
		OnError: ErrorModeAbort,
		now:     time.Now,
		newID:   uuid.NewString,
		locate:  Locate,
	}
}

// Scan checks every document under root, one at a time in walk order.
//
// Errors on the root are always fatal. Unreadable subdirectories are logged,
// recorded in ScanReport.SkippedDirs and left out. Checker errors are fatal
// in abort mode; in skip mode they are logged and recorded in
// ScanReport.Failures.
func (b *Builder) Scan(ctx context.Context, root string) (*types.ScanReport, error) {
	start := b.now()
	report := &types.ScanReport{
		RunID:     b.newID(),
		Version:   b.Version,
		Timestamp: start,
		Root:      root,
		Host:      b.Host,
	}

	logger := b.logger.With(zap.String("run_id", report.RunID))
	logger.Debug("scan started", zap.String("root", root))

	for path, err := range b.locate(root) {
		if errors.Is(err, ErrUnreadableDir) {
			logger.Warn("skipping unreadable directory",
				zap.String("directory", path), zap.Error(err))
			report.SkippedDirs = append(report.SkippedDirs, types.DocumentFailure{Path: path, Error: err.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", root, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan interrupted before %s: %w", path, err)
		}

		report.Summary.DocumentsChecked++
		links, err := b.checker.BrokenLinks(ctx, path)
		if err != nil {
			if b.OnError != ErrorModeSkip || ctx.Err() != nil {
				return nil, err
			}
			logger.Warn("skipping unreadable document",
				zap.String("document", path), zap.Error(err))
			report.Failures = append(report.Failures, types.DocumentFailure{Path: path, Error: err.Error()})
			report.Summary.Failed++
			continue
		}

		logger.Debug("document checked",
			zap.String("document", path), zap.Int("broken_links", len(links)))
		if len(links) == 0 {
			continue
		}

		report.Documents = append(report.Documents, types.DocumentResult{Path: path, BrokenLinks: links})
		report.Summary.DocumentsBroken++
		report.Summary.BrokenLinks += len(links)
	}

	report.Summary.DurationMS = b.now().Sub(start).Milliseconds()
	return report, nil
}

// BuildReport scans root and renders the plain-text report. ok is false
// when no document has a broken link, in which case nothing should be written.
func (b *Builder) BuildReport(ctx context.Context, root string) (text string, ok bool, err error) {
	report, err := b.Scan(ctx, root)
	if err != nil {
		return "", false, err
	}
	text, ok = output.RenderText(report)
	return text, ok, nil
}
