package mapper

import (
	"sort"

	"github.com/beevik/etree"
)

// rule is one mapping rule. Rules carry a declared priority; evaluation
// order is priority ascending, never the incidental order of this file.
type rule struct {
	name     string
	priority int
	match    func(el *etree.Element) bool
	apply    func(m *Mapper, el *etree.Element) ContentItem
}

// ruleTable lists every mapping rule. Specific shapes carry lower priority
// numbers than generic fallbacks so they always win: a paragraph holding a
// floated image must hit the combined rule before the bare-paragraph rule
// can see it.
var ruleTable = []rule{
	{
		name:     "paragraph-with-image",
		priority: 10,
		match: func(el *etree.Element) bool {
			return (el.Tag == "paragraph" || el.Tag == "text") && el.FindElement(".//image") != nil
		},
		apply: (*Mapper).applyParagraphWithImage,
	},
	{
		name:     "accordion",
		priority: 20,
		match:    func(el *etree.Element) bool { return el.Tag == "accordion" },
		apply:    (*Mapper).applyAccordion,
	},
	{
		name:     "gallery",
		priority: 30,
		match:    func(el *etree.Element) bool { return el.Tag == "gallery" },
		apply:    (*Mapper).applyGallery,
	},
	{
		name:     "promo-list",
		priority: 40,
		match:    func(el *etree.Element) bool { return el.Tag == "promo-list" },
		apply:    (*Mapper).applyPromoList,
	},
	{
		name:     "video",
		priority: 50,
		match: func(el *etree.Element) bool {
			return el.Tag == "video" || el.Tag == "video-embed"
		},
		apply: (*Mapper).applyVideo,
	},
	{
		name:     "form",
		priority: 60,
		match: func(el *etree.Element) bool {
			return el.Tag == "form" && el.SelectAttrValue("ref", "") != ""
		},
		apply: (*Mapper).applyForm,
	},
	{
		name:     "paragraph",
		priority: 90,
		match: func(el *etree.Element) bool {
			return el.Tag == "paragraph" || el.Tag == "text"
		},
		apply: (*Mapper).applyParagraph,
	},
}

// orderedRules returns the rule table sorted by declared priority.
func orderedRules() []rule {
	rules := make([]rule, len(ruleTable))
	copy(rules, ruleTable)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].priority < rules[j].priority
	})
	return rules
}

func (m *Mapper) applyParagraphWithImage(el *etree.Element) ContentItem {
	img := el.FindElement(".//image")
	name := img.SelectAttrValue("src", "")
	caption := ""
	if c := el.FindElement(".//caption"); c != nil {
		caption = visibleText(c)
	}
	item := ContentItem{
		Kind:      KindImage,
		Text:      visibleTextSkipping(el, "image", "caption"),
		ImageName: name,
		AssetID:   m.resolveImage(name),
		Caption:   caption,
		Alt:       img.SelectAttrValue("alt", ""),
	}
	return item
}

func (m *Mapper) applyAccordion(el *etree.Element) ContentItem {
	item := ContentItem{Kind: KindAccordion}
	for _, sec := range el.SelectElements("section") {
		item.Sections = append(item.Sections, AccordionSection{
			Title: sec.SelectAttrValue("title", ""),
			Body:  visibleText(sec),
		})
	}
	return item
}

func (m *Mapper) applyGallery(el *etree.Element) ContentItem {
	item := ContentItem{Kind: KindGallery}
	for _, img := range el.SelectElements("image") {
		name := img.SelectAttrValue("src", "")
		item.Images = append(item.Images, GalleryImage{
			Name:    name,
			AssetID: m.resolveImage(name),
			Alt:     img.SelectAttrValue("alt", ""),
		})
	}
	return item
}

func (m *Mapper) applyPromoList(el *etree.Element) ContentItem {
	item := ContentItem{Kind: KindCardGroup}
	for _, promo := range el.SelectElements("promo") {
		card := Card{}
		if h := promo.SelectElement("heading"); h != nil {
			card.Heading = visibleText(h)
		}
		if b := promo.SelectElement("body"); b != nil {
			card.Body = visibleText(b)
		}
		if img := promo.SelectElement("image"); img != nil {
			card.ImageName = img.SelectAttrValue("src", "")
			card.AssetID = m.resolveImage(card.ImageName)
		}
		item.Cards = append(item.Cards, card)
	}
	return item
}

func (m *Mapper) applyVideo(el *etree.Element) ContentItem {
	url := el.SelectAttrValue("src", "")
	if url == "" {
		url = el.SelectAttrValue("embed-url", "")
	}
	return ContentItem{Kind: KindVideo, VideoURL: url}
}

func (m *Mapper) applyForm(el *etree.Element) ContentItem {
	return ContentItem{Kind: KindForm, FormRef: el.SelectAttrValue("ref", "")}
}

func (m *Mapper) applyParagraph(el *etree.Element) ContentItem {
	return ContentItem{Kind: KindParagraph, Text: visibleText(el)}
}
