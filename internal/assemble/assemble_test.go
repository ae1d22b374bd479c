package assemble

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/pageporter/internal/document"
	"github.com/fyrsmithlabs/pageporter/internal/mapper"
	"github.com/fyrsmithlabs/pageporter/internal/metadata"
	"github.com/fyrsmithlabs/pageporter/internal/template"
)

func parseTemplate(t *testing.T, src string) *template.Template {
	t.Helper()
	tpl, err := template.Parse([]byte(src), "t.xml")
	require.NoError(t, err)
	return tpl
}

func TestInsert_OrderAndFlowMode(t *testing.T) {
	tpl := parseTemplate(t, `<page-layout><section-item/><section-item mode="grid"/></page-layout>`)

	err := Insert(tpl, []mapper.ContentItem{
		{Kind: mapper.KindParagraph, Text: "one"},
		{Kind: mapper.KindVideo, VideoURL: "https://v/1"},
		{Kind: mapper.KindParagraph, Text: "two"},
	})
	require.NoError(t, err)

	section := tpl.FirstSectionItem()
	assert.Equal(t, template.ModeFlow, section.SelectAttrValue("mode", ""))

	children := section.ChildElements()
	require.Len(t, children, 3)
	assert.Equal(t, "paragraph", children[0].SelectAttrValue("type", ""))
	assert.Equal(t, "video", children[1].SelectAttrValue("type", ""))
	assert.Equal(t, "two", children[2].SelectElement("text").Text())

	// The second container is untouched.
	second := tpl.Root().ChildElements()[1]
	assert.Equal(t, "grid", second.SelectAttrValue("mode", ""))
	assert.Empty(t, second.ChildElements())
}

func TestInsert_PresetModeKept(t *testing.T) {
	tpl := parseTemplate(t, `<page-layout><section-item mode="grid"/></page-layout>`)
	require.NoError(t, Insert(tpl, []mapper.ContentItem{{Kind: mapper.KindParagraph, Text: "x"}}))
	assert.Equal(t, "grid", tpl.FirstSectionItem().SelectAttrValue("mode", ""),
		"a pre-set mode must never be overwritten")
}

func TestInsert_StructuralMismatch(t *testing.T) {
	tpl := parseTemplate(t, `<page-layout><hero/></page-layout>`)
	err := Insert(tpl, []mapper.ContentItem{{Kind: mapper.KindParagraph, Text: "x"}})
	require.Error(t, err)

	var serr *template.StructuralError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "section-item", serr.Missing)
}

func TestRender_CombinedImageItem(t *testing.T) {
	tpl := parseTemplate(t, `<page-layout><section-item/></page-layout>`)
	require.NoError(t, Insert(tpl, []mapper.ContentItem{{
		Kind:      mapper.KindImage,
		Text:      "Doors open at seven.",
		ImageName: "concert.jpg",
		AssetID:   "42",
		Caption:   "Opening night",
		Alt:       "The hall",
	}}))

	item := tpl.FirstSectionItem().ChildElements()[0]
	assert.Equal(t, "image", item.SelectAttrValue("type", ""))
	assert.Equal(t, "42", item.SelectAttrValue("asset-id", ""))
	assert.Equal(t, "Doors open at seven.", item.SelectElement("text").Text())
	assert.Equal(t, "Opening night", item.SelectElement("caption").Text())
}

func TestRender_CardGroup(t *testing.T) {
	tpl := parseTemplate(t, `<page-layout><section-item/></page-layout>`)
	require.NoError(t, Insert(tpl, []mapper.ContentItem{{
		Kind: mapper.KindCardGroup,
		Cards: []mapper.Card{
			{Heading: "Season pass", Body: "Save 20%.", ImageName: "hall.jpg", AssetID: "7"},
			{Heading: "Newsletter", Body: "Monthly."},
		},
	}}))

	groups := tpl.CardGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, template.CardOptionDefault, groups[0].SelectAttrValue("display-option", ""))

	cards := groups[0].SelectElements("card")
	require.Len(t, cards, 2)
	assert.NotNil(t, cards[0].SelectElement("image"))
	assert.Nil(t, cards[1].SelectElement("image"))
}

func TestApplyMetadata(t *testing.T) {
	tpl := parseTemplate(t, `<page-layout><hero><heading/><page-type/></hero><section-item/></page-layout>`)

	yes := true
	ApplyMetadata(tpl, metadata.Transformed{
		Heading:  "Spring Concert",
		PageType: metadata.PageTypeStandard,
		Fields: []metadata.Field{
			{Name: "featured", Values: []string{"Yes"}, Bool: &yes},
			{Name: "audience", Values: []string{"students", "alumni"}},
			{Name: document.FieldDescription, Values: []string{"Annual show."}},
		},
	})

	hero := tpl.Hero()
	assert.Equal(t, "Spring Concert", hero.SelectElement("heading").Text())
	assert.Equal(t, "standard", hero.SelectElement("page-type").Text())

	meta := tpl.Metadata()
	fields := meta.SelectElements("field")
	require.Len(t, fields, 3)

	// Boolean stores its normalized form.
	assert.Equal(t, "featured", fields[0].SelectAttrValue("name", ""))
	assert.Equal(t, "true", fields[0].SelectElement("value").Text())

	// Multi-valued fields stay a list of value elements.
	values := fields[1].SelectElements("value")
	require.Len(t, values, 2)
	assert.Equal(t, "students", values[0].Text())
	assert.Equal(t, "alumni", values[1].Text())
}
