package checker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ancients-collective/brokenlayers/internal/types"
)

// Manifest is a YAML export of toolkit results, keyed by document path.
//
//	root: D:\maps
//	documents:
//	  - path: transport/roads.mxd
//	    broken:
//	      - Roads
//	      - name: Parcels
//	        data_source: D:\data\parcels.gdb
//	  - path: locked.mxd
//	    error: document is locked by another user
type Manifest struct {
	// Root anchors relative document paths. Defaults to the scan root.
	Root string `yaml:"root"`

	Documents []ManifestDocument `yaml:"documents" validate:"dive"`
}

// ManifestDocument is the recorded outcome for one document.
type ManifestDocument struct {
	Path   string         `yaml:"path" validate:"required"`
	Broken []ManifestLink `yaml:"broken" validate:"dive"`

	// Error, when set, replays a failure to open the document.
	Error string `yaml:"error" validate:"excluded_with=Broken"`
}

// ManifestLink is a broken link entry. It decodes from either a bare
// scalar (the layer name) or a mapping with name and data_source.
type ManifestLink struct {
	Name       string `yaml:"name" validate:"required"`
	DataSource string `yaml:"data_source"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (l *ManifestLink) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		l.Name = node.Value
		return nil
	}
	type plain ManifestLink
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*l = ManifestLink(p)
	return nil
}

// ManifestChecker answers from a loaded Manifest.
// Documents missing from the manifest have no broken links.
type ManifestChecker struct {
	root    string
	entries map[string]ManifestDocument
}

// LoadManifest reads and validates a manifest file. scanRoot anchors
// relative paths when the manifest does not set its own root.
func LoadManifest(path, scanRoot string) (*ManifestChecker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}

	return NewManifestChecker(m, scanRoot)
}

// NewManifestChecker validates m and indexes it by normalized path.
func NewManifestChecker(m Manifest, scanRoot string) (*ManifestChecker, error) {
	if err := validator.New().Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("invalid manifest: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	root := m.Root
	if root == "" {
		root = scanRoot
	}

	entries := make(map[string]ManifestDocument, len(m.Documents))
	for _, doc := range m.Documents {
		key := manifestKey(doc.Path)
		if _, dup := entries[key]; dup {
			return nil, fmt.Errorf("invalid manifest: duplicate document %q", doc.Path)
		}
		entries[key] = doc
	}

	return &ManifestChecker{root: root, entries: entries}, nil
}

// BrokenLinks looks path up by its exact form, then relative to the root.
func (c *ManifestChecker) BrokenLinks(ctx context.Context, path string) ([]types.BrokenLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, openError(path, err)
	}

	doc, ok := c.lookup(path)
	if !ok {
		return nil, nil
	}
	if doc.Error != "" {
		return nil, openError(path, errors.New(doc.Error))
	}

	links := make([]types.BrokenLink, 0, len(doc.Broken))
	for _, l := range doc.Broken {
		links = append(links, types.BrokenLink{Name: l.Name, DataSource: l.DataSource})
	}
	return links, nil
}

func (c *ManifestChecker) lookup(path string) (ManifestDocument, bool) {
	if doc, ok := c.entries[manifestKey(path)]; ok {
		return doc, true
	}
	if c.root == "" {
		return ManifestDocument{}, false
	}
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return ManifestDocument{}, false
	}
	doc, ok := c.entries[manifestKey(rel)]
	return doc, ok
}

// manifestKey normalizes separators so manifests exported on Windows
// match walks on other platforms and the reverse.
func manifestKey(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
}
