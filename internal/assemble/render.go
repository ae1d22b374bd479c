package assemble

import (
	"github.com/beevik/etree"

	"github.com/fyrsmithlabs/pageporter/internal/mapper"
	"github.com/fyrsmithlabs/pageporter/internal/template"
)

// setChildText sets the text of child tag under el, creating it if absent.
func setChildText(el *etree.Element, tag, text string) {
	child := el.SelectElement(tag)
	if child == nil {
		child = el.CreateElement(tag)
	}
	child.SetText(text)
}

// renderItem converts one ContentItem to its destination element. Card
// groups render as card-group blocks so the display-option post-pass finds
// them; everything else renders as a typed content-item.
func renderItem(item mapper.ContentItem) *etree.Element {
	if item.Kind == mapper.KindCardGroup {
		return renderCardGroup(item)
	}

	el := etree.NewElement("content-item")
	el.CreateAttr("type", string(item.Kind))

	switch item.Kind {
	case mapper.KindParagraph:
		setChildText(el, "text", item.Text)

	case mapper.KindImage:
		el.CreateAttr("asset-id", item.AssetID)
		setChildText(el, "source-name", item.ImageName)
		if item.Text != "" {
			setChildText(el, "text", item.Text)
		}
		if item.Caption != "" {
			setChildText(el, "caption", item.Caption)
		}
		if item.Alt != "" {
			setChildText(el, "alt", item.Alt)
		}

	case mapper.KindAccordion:
		for _, sec := range item.Sections {
			s := el.CreateElement("section")
			s.CreateAttr("title", sec.Title)
			s.SetText(sec.Body)
		}

	case mapper.KindVideo:
		el.CreateAttr("url", item.VideoURL)

	case mapper.KindGallery:
		for _, img := range item.Images {
			g := el.CreateElement("image")
			g.CreateAttr("name", img.Name)
			g.CreateAttr("asset-id", img.AssetID)
			if img.Alt != "" {
				g.CreateAttr("alt", img.Alt)
			}
		}

	case mapper.KindForm:
		el.CreateAttr("ref", item.FormRef)
	}

	return el
}

func renderCardGroup(item mapper.ContentItem) *etree.Element {
	group := etree.NewElement("card-group")
	group.CreateAttr("display-option", template.CardOptionDefault)
	for _, c := range item.Cards {
		card := group.CreateElement("card")
		setChildText(card, "heading", c.Heading)
		setChildText(card, "body", c.Body)
		if c.ImageName != "" {
			img := card.CreateElement("image")
			img.CreateAttr("name", c.ImageName)
			img.CreateAttr("asset-id", c.AssetID)
		}
	}
	return group
}
