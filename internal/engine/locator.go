package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

var (
	// ErrNotDirectory is returned when the scan root is a file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrUnreadableDir marks a subdirectory the walk had to skip.
	ErrUnreadableDir = errors.New("unreadable directory")
)

// IsDocument reports whether a file name denotes a map document.
func IsDocument(name string) bool {
	return strings.HasSuffix(name, types.DocumentSuffix)
}

// Locate walks root and yields the path of every non-directory entry whose
// name ends with the map document suffix, in filepath.WalkDir order.
//
// The sequence is lazy: the walk advances only as the caller iterates, and
// breaking out of the loop stops it. An error on the root itself (missing,
// unreadable, not a directory) is yielded once and ends the sequence. A
// subdirectory that cannot be read is yielded as an error wrapping
// ErrUnreadableDir and skipped, and the walk goes on. Symlinks are never
// followed; one that resolves to a directory is not a document.
func Locate(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					yield(path, err)
					return fs.SkipAll
				}
				if !yield(path, fmt.Errorf("%w %s: %w", ErrUnreadableDir, path, err)) {
					return fs.SkipAll
				}
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if path == root && !d.IsDir() {
				yield(path, &fs.PathError{Op: "walk", Path: root, Err: ErrNotDirectory})
				return fs.SkipAll
			}
			if d.IsDir() || !IsDocument(d.Name()) {
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 && isDirTarget(path) {
				return nil
			}
			if !yield(path, nil) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// isDirTarget reports whether the symlink at path resolves to a directory.
// Dangling links are treated as files.
func isDirTarget(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Documents collects Locate(root) into a slice. Unreadable subdirectories
// are left out; any other error stops the collection.
func Documents(root string) ([]string, error) {
	var docs []string
	for path, err := range Locate(root) {
		if errors.Is(err, ErrUnreadableDir) {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, path)
	}
	return docs, nil
}
