package metadata

import (
	"path/filepath"
	"strings"

	"github.com/fyrsmithlabs/pageporter/internal/document"
	"github.com/fyrsmithlabs/pageporter/internal/miglog"
)

// Page-type variants derived from the origin filename convention.
const (
	PageTypeStandard = "standard"
	PageTypeFeature  = "feature"
)

// featureFragment is the filename fragment that selects the feature
// page-type variant.
const featureFragment = "feature"

// headlineField is the dynamic field that overrides the wired title as the
// page heading.
const headlineField = "headline"

// booleanFields are the dynamic fields normalized to true/false.
var booleanFields = map[string]bool{
	"featured":          true,
	"archive":           true,
	"hide-from-sitemap": true,
}

// Field is one transformed metadata field bound for the destination
// structure. Multi-valued fields keep every value as a list entry; the
// comma-joined human-review form exists only in the migration log.
type Field struct {
	Name   string
	Values []string
	// Bool is set when the field is a boolean that normalized cleanly.
	// Ambiguous tokens leave Bool nil and pass the raw value through.
	Bool *bool
}

// Transformed is the full metadata transform output.
type Transformed struct {
	// Heading is the derived page heading.
	Heading string
	// PageType is the filename-derived page-type variant.
	PageType string
	// Fields holds direct-copy and boolean fields in origin order, wired
	// fields first.
	Fields []Field
}

// Transform applies the per-field rules. It is a pure function of the
// extracted values and the origin path; a missing field yields an absent
// result, never an error.
func Transform(ex Extracted, originPath string, log *miglog.Log) Transformed {
	out := Transformed{
		Heading:  deriveHeading(ex),
		PageType: PageTypeFromFilename(originPath),
	}
	log.Infof("page-type %q derived from filename %q", out.PageType, filepath.Base(originPath))

	// Wired direct-copy fields, schema order. Title is consumed by the
	// heading derivation and not copied again.
	for _, name := range document.WiredFields {
		if name == document.FieldTitle {
			continue
		}
		if v, ok := ex.Wired[name]; ok {
			out.Fields = append(out.Fields, Field{Name: name, Values: []string{v}})
		}
	}

	// Dynamic fields, first-seen order.
	for _, name := range ex.Dynamic.Names() {
		if name == headlineField {
			continue
		}
		values := ex.Dynamic.Get(name)
		if booleanFields[name] {
			out.Fields = append(out.Fields, transformBoolean(name, values[0], log))
			continue
		}
		// Values stay a list in the structured field; the joined form is
		// for the reviewer's eyes only.
		log.Infof("field %q copied with values: %s", name, strings.Join(values, ", "))
		out.Fields = append(out.Fields, Field{Name: name, Values: append([]string(nil), values...)})
	}

	return out
}

// transformBoolean normalizes yes/no case-insensitively. Any other token
// passes through unchanged and is flagged for review.
func transformBoolean(name, raw string, log *miglog.Log) Field {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		v := true
		log.Infof("boolean field %q: %q -> true", name, raw)
		return Field{Name: name, Values: []string{raw}, Bool: &v}
	case "no":
		v := false
		log.Infof("boolean field %q: %q -> false", name, raw)
		return Field{Name: name, Values: []string{raw}, Bool: &v}
	default:
		log.Warnf("ambiguous boolean value %q for field %q; passed through unchanged", raw, name)
		return Field{Name: name, Values: []string{raw}}
	}
}

// deriveHeading prefers a non-empty headline field, falling back to the
// wired title.
func deriveHeading(ex Extracted) string {
	if h, ok := ex.Dynamic.First(headlineField); ok && strings.TrimSpace(h) != "" {
		return h
	}
	return ex.Wired[document.FieldTitle]
}

// PageTypeFromFilename derives the page-type variant: a delimiter-bounded
// "feature" fragment anywhere in the base name selects the feature variant.
func PageTypeFromFilename(originPath string) string {
	base := strings.ToLower(filepath.Base(originPath))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, tok := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	}) {
		if tok == featureFragment {
			return PageTypeFeature
		}
	}
	return PageTypeStandard
}
