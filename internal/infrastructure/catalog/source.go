// Package catalog loads the module and scenario catalog from YAML documents:
// the copy embedded in the binary or a file on disk.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/smartstart/smartstart-money/internal/domain/catalog"
)

//go:embed content/catalog.yaml
var embedded []byte

// Document is the on-disk shape of a catalog.
type Document struct {
	Modules   []domain.Module   `yaml:"modules"`
	Scenarios []domain.Scenario `yaml:"scenarios"`
}

// Parse decodes and validates a YAML catalog document. Unknown keys are
// rejected so typos in content files surface at load time.
func Parse(data []byte) (*domain.Catalog, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return domain.New(doc.Modules, doc.Scenarios)
}

func decode(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode catalog: %w", err)
	}
	return doc, nil
}

// EmbeddedDocument returns the built-in catalog document. The migrate command
// uses it to seed postgres.
func EmbeddedDocument() (Document, error) {
	return decode(embedded)
}

// ═══════════════════════════════════════════════════════════════════════════
// SOURCES
// ═══════════════════════════════════════════════════════════════════════════

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates the default catalog source.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load implements domain.Source.
func (EmbeddedSource) Load(_ context.Context) (*domain.Catalog, error) {
	c, err := Parse(embedded)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// FileSource reads the catalog from a YAML file on every Load.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements domain.Source.
func (s *FileSource) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", s.path, err)
	}
	return c, nil
}

var (
	_ domain.Source = EmbeddedSource{}
	_ domain.Source = (*FileSource)(nil)
)
