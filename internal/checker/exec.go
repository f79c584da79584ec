package checker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// maxLineSize caps a single line of toolkit output.
const maxLineSize = 1 << 20

// ExecChecker runs an external toolkit command once per document.
//
// The document path is appended as the final argument. The command prints one
// broken link per line on stdout, either as a bare layer name or as a JSON
// object {"name": "...", "data_source": "..."}. A non-zero exit status means
// the document could not be opened.
type ExecChecker struct {
	argv    []string
	timeout time.Duration
}

// NewExecChecker parses command with POSIX shell word rules, expanding
// environment variables, and returns a checker that runs it.
// A zero timeout means documents are never timed out.
func NewExecChecker(command string, timeout time.Duration) (*ExecChecker, error) {
	argv, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to parse checker command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("checker command %q is empty", command)
	}
	return &ExecChecker{argv: argv, timeout: timeout}, nil
}

// Command returns the parsed argument vector, without the document path.
func (c *ExecChecker) Command() []string {
	return slices.Clone(c.argv)
}

// BrokenLinks runs the toolkit command for path and parses its output.
func (c *ExecChecker) BrokenLinks(ctx context.Context, path string) ([]types.BrokenLink, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(slices.Clone(c.argv[1:]), path)
	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, openError(path, ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, openError(path, err)
	}

	links, err := ParseLinks(&stdout)
	if err != nil {
		return nil, openError(path, err)
	}
	return links, nil
}

// ParseLinks decodes toolkit output, one broken link per non-blank line.
func ParseLinks(r io.Reader) ([]types.BrokenLink, error) {
	var links []types.BrokenLink

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "{") {
			links = append(links, types.BrokenLink{Name: line})
			continue
		}

		var link types.BrokenLink
		if err := json.Unmarshal([]byte(line), &link); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNo, err)
		}
		if link.Name == "" {
			return nil, fmt.Errorf("line %d: broken link has no name", lineNo)
		}
		links = append(links, link)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d: exceeds %d bytes", lineNo+1, maxLineSize)
		}
		return nil, err
	}
	return links, nil
}
