package mapper

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/fyrsmithlabs/pageporter/internal/assets"
	"github.com/fyrsmithlabs/pageporter/internal/miglog"
)

// Mapper walks an origin content region and emits destination content
// items in origin order. Image descriptors and Exclusions are appended to
// shared lists owned by the caller; the mapper only ever appends.
type Mapper struct {
	resolver assets.Resolver
	log      *miglog.Log
	path     string

	rules []rule

	// Images collects one descriptor per referenced image, resolved or
	// not. Unresolvable images are flagged, never omitted.
	Images *[]string
	// Exclusions collects blocks that matched no rule but carried text.
	Exclusions *[]Exclusion
}

// New returns a Mapper for one origin file. images and exclusions are the
// shared append-only output lists.
func New(resolver assets.Resolver, log *miglog.Log, path string, images *[]string, exclusions *[]Exclusion) *Mapper {
	return &Mapper{
		resolver:   resolver,
		log:        log,
		path:       path,
		rules:      orderedRules(),
		Images:     images,
		Exclusions: exclusions,
	}
}

// MapRegion maps every block of the content region, preserving origin
// order. A nil region maps to no items.
func (m *Mapper) MapRegion(region *etree.Element) []ContentItem {
	if region == nil {
		return nil
	}
	var items []ContentItem
	for _, el := range region.ChildElements() {
		if item, ok := m.mapBlock(el); ok {
			items = append(items, item)
		}
	}
	return items
}

// mapBlock applies the ordered rule list; the first matching rule wins.
// A miss with visible text becomes an Exclusion; an empty miss is dropped.
func (m *Mapper) mapBlock(el *etree.Element) (ContentItem, bool) {
	for _, r := range m.rules {
		if r.match(el) {
			item := r.apply(m, el)
			m.log.Infof("mapped <%s> via rule %q to %s", el.Tag, r.name, item.Kind)
			return item, true
		}
	}

	text := visibleText(el)
	if text == "" {
		return ContentItem{}, false
	}

	preview := truncatePreview(text)
	*m.Exclusions = append(*m.Exclusions, Exclusion{
		Tag:     el.Tag,
		Path:    m.path,
		Preview: preview,
		Reason:  "no mapping rule matched",
	})
	m.log.Warnf("excluded <%s>: no mapping rule matched; text %q", el.Tag, preview)
	return ContentItem{}, false
}

// resolveImage resolves an image filename to a destination asset id,
// appending a descriptor to the shared image list. Misses return the
// NoAssetID marker; suffix-tier hits are surfaced as warnings for review.
func (m *Mapper) resolveImage(name string) string {
	if name == "" {
		return assets.NoAssetID
	}
	match, ok := m.resolver.Resolve(name)
	switch {
	case !ok:
		*m.Images = append(*m.Images, fmt.Sprintf("%s [unresolved]", name))
		m.log.Warnf("no asset id for image %q", name)
		return assets.NoAssetID
	case !match.Exact:
		*m.Images = append(*m.Images, fmt.Sprintf("%s -> %s", name, match.ID))
		m.log.Warnf("image %q matched asset %q only by suffix (id %s); verify manually", name, match.MatchedName, match.ID)
		return match.ID
	default:
		*m.Images = append(*m.Images, fmt.Sprintf("%s -> %s", name, match.ID))
		m.log.Infof("image %q resolved to asset id %s", name, match.ID)
		return match.ID
	}
}
