package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// LogFilePrefix and LogFileExt surround the YYYYMMDD date in the log file name.
	LogFilePrefix = "brokenLayers_"
	LogFileExt    = ".log"

	logDateLayout = "20060102"

	// recordPrefix mirrors the "LEVEL:logger:" prefix of a plain logging record.
	recordPrefix = "WARNING:brokenlayers:"
)

// LogFileName returns the dated log file name for now's calendar day,
// e.g. brokenLayers_20261015.log.
func LogFileName(now time.Time) string {
	return LogFilePrefix + now.Format(logDateLayout) + LogFileExt
}

// LogFile appends broken-layer reports to the dated log in Dir.
//
// Every Append opens, writes and closes the file. Runs on the same day share
// one file; each later run is introduced by a separator line naming the run
// time and host.
type LogFile struct {
	Dir      string
	Hostname string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewLogFile returns a LogFile writing into dir.
func NewLogFile(dir, hostname string) *LogFile {
	return &LogFile{Dir: dir, Hostname: hostname, Now: time.Now}
}

func (l *LogFile) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

// Path returns the file today's run writes to.
func (l *LogFile) Path() string {
	return filepath.Join(l.Dir, LogFileName(l.now()))
}

// Append writes text as a single warning record and returns the file path.
func (l *LogFile) Append(text string) (path string, err error) {
	now := l.now()
	path = filepath.Join(l.Dir, LogFileName(now))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close log file %q: %w", path, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat log file %q: %w", path, err)
	}

	var b strings.Builder
	if info.Size() > 0 {
		fmt.Fprintf(&b, "--- run %s on %s ---\n", now.Format(time.RFC3339), l.Hostname)
	}
	b.WriteString(recordPrefix)
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return "", fmt.Errorf("failed to write log file %q: %w", path, err)
	}
	return path, nil
}
