// Package assemble inserts mapped content items and transformed metadata
// into a destination template.
package assemble

import (
	"strconv"

	"github.com/fyrsmithlabs/pageporter/internal/mapper"
	"github.com/fyrsmithlabs/pageporter/internal/metadata"
	"github.com/fyrsmithlabs/pageporter/internal/template"
)

// Insert places items into the first section-item container in document
// order, preserving their order. A template with no container is a
// structural mismatch: the whole file fails, nothing is written.
//
// The container's mode is set to "flow" only when the template left it
// unset; a pre-set mode belongs to a page class that is not single-stream
// and must survive.
func Insert(tpl *template.Template, items []mapper.ContentItem) error {
	section := tpl.FirstSectionItem()
	if section == nil {
		return &template.StructuralError{Path: tpl.Path, Missing: "section-item"}
	}

	for _, item := range items {
		section.AddChild(renderItem(item))
	}

	if section.SelectAttrValue("mode", "") == "" {
		section.CreateAttr("mode", template.ModeFlow)
	}
	return nil
}

// ApplyMetadata writes the transformed metadata into the destination: the
// derived heading and page-type into the hero group, everything else into
// the structured metadata region.
func ApplyMetadata(tpl *template.Template, tr metadata.Transformed) {
	if hero := tpl.Hero(); hero != nil {
		setChildText(hero, "heading", tr.Heading)
		setChildText(hero, "page-type", tr.PageType)
	}

	meta := tpl.Metadata()
	for _, f := range tr.Fields {
		el := meta.CreateElement("field")
		el.CreateAttr("name", f.Name)
		if f.Bool != nil {
			el.CreateElement("value").SetText(strconv.FormatBool(*f.Bool))
			continue
		}
		// Multi-valued fields stay a list; never the comma-joined form.
		for _, v := range f.Values {
			el.CreateElement("value").SetText(v)
		}
	}
}
