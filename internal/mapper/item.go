// Package mapper classifies origin content blocks and emits typed
// destination content items. Every non-trivial block either maps to exactly
// one item or is recorded as exactly one Exclusion; blocks with nothing to
// lose are dropped silently.
package mapper

import (
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// ItemKind tags a ContentItem variant.
type ItemKind string

const (
	KindParagraph ItemKind = "paragraph"
	KindImage     ItemKind = "image"
	KindAccordion ItemKind = "accordion-group"
	KindVideo     ItemKind = "video"
	KindGallery   ItemKind = "gallery"
	KindCardGroup ItemKind = "card-group"
	KindForm      ItemKind = "form-reference"
)

// ContentItem is a tagged variant over the destination content types. Only
// the fields of the tagged kind are meaningful.
type ContentItem struct {
	Kind ItemKind

	// Text carries paragraph body text; for KindImage it is the combined
	// paragraph text flowing around the image.
	Text string

	// Image fields (KindImage).
	ImageName string
	AssetID   string
	Caption   string
	Alt       string

	// Accordion fields (KindAccordion).
	Sections []AccordionSection

	// Video fields (KindVideo).
	VideoURL string

	// Gallery fields (KindGallery).
	Images []GalleryImage

	// Card-group fields (KindCardGroup).
	Cards []Card

	// Form fields (KindForm).
	FormRef string
}

// AccordionSection is one expandable section of an accordion group.
type AccordionSection struct {
	Title string
	Body  string
}

// GalleryImage is one image of a gallery item.
type GalleryImage struct {
	Name    string
	AssetID string
	Alt     string
}

// Card is one card of a card-group item.
type Card struct {
	Heading   string
	Body      string
	ImageName string
	AssetID   string
}

// previewLimit bounds the Exclusion text preview.
const previewLimit = 70

// Exclusion records an origin block that carried non-trivial content but
// matched no mapping rule. Exclusions feed the human-triage reports.
type Exclusion struct {
	// Tag is the origin element tag, a hint for locating the block.
	Tag string
	// Path is the origin file the block came from.
	Path string
	// Preview is the block's text, truncated to previewLimit runes.
	Preview string
	// Reason says why the block was excluded.
	Reason string
}

// visibleText collects all descendant text of el, whitespace-collapsed.
func visibleText(el *etree.Element) string {
	var b strings.Builder
	collectText(el, &b)
	return collapseSpace(b.String())
}

func collectText(el *etree.Element, b *strings.Builder) {
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.CharData:
			b.WriteString(c.Data)
			b.WriteByte(' ')
		case *etree.Element:
			collectText(c, b)
		}
	}
}

// visibleTextSkipping is visibleText but ignores subtrees with a tag in skip.
func visibleTextSkipping(el *etree.Element, skip ...string) string {
	var b strings.Builder
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.Child {
			switch c := child.(type) {
			case *etree.CharData:
				b.WriteString(c.Data)
				b.WriteByte(' ')
			case *etree.Element:
				if !skipped[c.Tag] {
					walk(c)
				}
			}
		}
	}
	walk(el)
	return collapseSpace(b.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// truncatePreview cuts s to previewLimit runes.
func truncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}
	return string(runes[:previewLimit])
}
