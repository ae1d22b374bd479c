// Package template models the destination page schema: the hero group,
// section-item containers, card groups, and the migration-summary field.
package template

import (
	"fmt"
	"os"

	"github.com/beevik/etree"
)

// Display options for card groups.
const (
	CardOptionDefault = "image-left"
	CardOptionNoImage = "no-image"
)

// Section container modes.
const (
	ModeFlow = "flow"
)

// StructuralError reports a destination template missing an element the
// engine requires. It aborts the file with no partial write.
type StructuralError struct {
	Path    string
	Missing string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("template %s: missing %s", e.Path, e.Missing)
}

// Template is a parsed destination page template. The engine mutates it in
// place and serializes the result; the origin is never touched.
type Template struct {
	Path string

	doc *etree.Document
}

// Load reads and parses a destination template from disk.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses a destination template from raw bytes.
func Parse(data []byte, path string) (*Template, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse template %s: no root element", path)
	}
	return &Template{Path: path, doc: doc}, nil
}

// Root exposes the destination tree root for assembly.
func (t *Template) Root() *etree.Element {
	return t.doc.Root()
}

// FirstSectionItem returns the first section-item container in document
// order, or nil when the template has none.
func (t *Template) FirstSectionItem() *etree.Element {
	return t.doc.FindElement("//section-item")
}

// Hero returns the hero group, or nil.
func (t *Template) Hero() *etree.Element {
	return t.doc.FindElement("//hero")
}

// Metadata returns the structured metadata region, creating it under the
// root when the template omits it.
func (t *Template) Metadata() *etree.Element {
	if el := t.doc.FindElement("//metadata"); el != nil {
		return el
	}
	return t.doc.Root().CreateElement("metadata")
}

// CardGroups returns every card-group element in document order, including
// groups nested inside section containers.
func (t *Template) CardGroups() []*etree.Element {
	return t.doc.FindElements("//card-group")
}

// SetMigrationSummary writes the rendered audit summary into the
// migration-summary field, creating the field if the template omits it.
func (t *Template) SetMigrationSummary(text string) {
	el := t.doc.FindElement("//migration-summary")
	if el == nil {
		el = t.doc.Root().CreateElement("migration-summary")
	}
	el.SetText(text)
}

// Bytes serializes the document. Serialization is deterministic: identical
// trees yield identical bytes, which backs the re-run guarantee.
func (t *Template) Bytes() ([]byte, error) {
	t.doc.Indent(2)
	return t.doc.WriteToBytes()
}

// WriteFile serializes the document to path.
func (t *Template) WriteFile(path string) error {
	data, err := t.Bytes()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
