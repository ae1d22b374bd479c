package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = `<page-layout>
  <hero><heading/><page-type/></hero>
  <section-item mode="">
    <card-group display-option="image-left">
      <card><heading>One</heading><body>First</body></card>
    </card-group>
  </section-item>
  <section-item mode="grid"/>
  <migration-summary/>
</page-layout>`

func TestParse_Lookups(t *testing.T) {
	tpl, err := Parse([]byte(sampleTemplate), "t.xml")
	require.NoError(t, err)

	hero := tpl.Hero()
	require.NotNil(t, hero)
	assert.NotNil(t, hero.SelectElement("heading"))

	first := tpl.FirstSectionItem()
	require.NotNil(t, first)
	assert.Equal(t, "", first.SelectAttrValue("mode", ""))

	groups := tpl.CardGroups()
	assert.Len(t, groups, 1)
}

func TestFirstSectionItem_Missing(t *testing.T) {
	tpl, err := Parse([]byte(`<page-layout><hero/></page-layout>`), "t.xml")
	require.NoError(t, err)
	assert.Nil(t, tpl.FirstSectionItem())
}

func TestSetMigrationSummary(t *testing.T) {
	tpl, err := Parse([]byte(sampleTemplate), "t.xml")
	require.NoError(t, err)

	tpl.SetMigrationSummary("line one\nline two")
	data, err := tpl.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(data), "line one")

	// A template without the field gets one created.
	bare, err := Parse([]byte(`<page-layout><section-item/></page-layout>`), "t.xml")
	require.NoError(t, err)
	bare.SetMigrationSummary("audit")
	data, err = bare.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(data), "<migration-summary>audit</migration-summary>")
}

func TestMetadata_CreatedWhenAbsent(t *testing.T) {
	tpl, err := Parse([]byte(`<page-layout/>`), "t.xml")
	require.NoError(t, err)

	meta := tpl.Metadata()
	require.NotNil(t, meta)
	// Second call returns the same region, not a duplicate.
	assert.Same(t, meta, tpl.Metadata())
}

func TestBytes_Deterministic(t *testing.T) {
	a, err := Parse([]byte(sampleTemplate), "t.xml")
	require.NoError(t, err)
	b, err := Parse([]byte(sampleTemplate), "t.xml")
	require.NoError(t, err)

	ab, err := a.Bytes()
	require.NoError(t, err)
	bb, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, ab, bb)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`<page-layout>`), "t.xml")
	assert.Error(t, err)
	_, err = Parse(nil, "t.xml")
	assert.Error(t, err)
}
