// Package document models the legacy origin page schema: wired metadata,
// the ordered dynamic-metadata multimap, folder ancestry, and the content
// region holding the page body blocks.
package document

import (
	"fmt"
	"os"

	"github.com/beevik/etree"
)

// Wired metadata field names. These are read by name from fixed positions
// in the origin document; anything else lives in dynamic metadata.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldKeywords    = "keywords"
	FieldSummary     = "summary"
	FieldDisplayName = "display-name"
	FieldStartDate   = "start-date"
)

// WiredFields lists the fixed field set in schema order.
var WiredFields = []string{
	FieldTitle,
	FieldDescription,
	FieldKeywords,
	FieldSummary,
	FieldDisplayName,
	FieldStartDate,
}

// ParseError reports a malformed origin document. It aborts the file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FolderRecord is one ancestor folder of the page. Folder records are
// consumed by the folder-metadata collaborator, not by the mapper.
type FolderRecord struct {
	Path             string
	Name             string
	DisplayName      string
	IncludeInNav     bool
	IncludeInSitemap bool
}

// Origin is a parsed origin page.
type Origin struct {
	// Path is the origin file path, used for derived metadata and audit.
	Path string

	root *etree.Element
}

// Load reads and parses an origin page from disk.
func Load(path string) (*Origin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(data, path)
}

// Parse parses an origin page from raw bytes. The path is recorded for
// audit output and filename-derived metadata only.
func Parse(data []byte, path string) (*Origin, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("document has no root element")}
	}
	if root.Tag != "page" {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("root element is <%s>, expected <page>", root.Tag)}
	}
	return &Origin{Path: path, root: root}, nil
}

// Wired returns the fixed-schema metadata. Fields whose source element is
// absent are absent from the map; an empty element yields an empty string.
func (o *Origin) Wired() map[string]string {
	out := make(map[string]string)
	region := o.root.SelectElement("wired-metadata")
	if region == nil {
		return out
	}
	for _, name := range WiredFields {
		if el := region.SelectElement(name); el != nil {
			out[name] = el.Text()
		}
	}
	return out
}

// Dynamic returns the dynamic-metadata multimap, values in first-seen
// order. A field name appearing more than once keeps every value as a
// separate entry.
func (o *Origin) Dynamic() *Multimap {
	mm := NewMultimap()
	region := o.root.SelectElement("dynamic-metadata")
	if region == nil {
		return mm
	}
	for _, field := range region.SelectElements("field") {
		name := field.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		values := field.SelectElements("value")
		if len(values) == 0 {
			// Compact form: <field name="x" value="y"/>
			if v := field.SelectAttr("value"); v != nil {
				mm.Add(name, v.Value)
			}
			continue
		}
		for _, v := range values {
			mm.Add(name, v.Text())
		}
	}
	return mm
}

// Content returns the root of the content region, or nil when the page
// carries no body content.
func (o *Origin) Content() *etree.Element {
	return o.root.SelectElement("content")
}

// Folders returns the folder ancestry records in document order.
func (o *Origin) Folders() []FolderRecord {
	region := o.root.SelectElement("folder-ancestry")
	if region == nil {
		return nil
	}
	var out []FolderRecord
	for _, f := range region.SelectElements("folder") {
		out = append(out, FolderRecord{
			Path:             f.SelectAttrValue("path", ""),
			Name:             f.SelectAttrValue("name", ""),
			DisplayName:      f.SelectAttrValue("display-name", ""),
			IncludeInNav:     f.SelectAttrValue("include-in-nav", "") == "true",
			IncludeInSitemap: f.SelectAttrValue("include-in-sitemap", "") == "true",
		})
	}
	return out
}
