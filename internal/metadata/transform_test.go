package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/pageporter/internal/document"
	"github.com/fyrsmithlabs/pageporter/internal/miglog"
)

func extracted(wired map[string]string, dyn func(*document.Multimap)) Extracted {
	mm := document.NewMultimap()
	if dyn != nil {
		dyn(mm)
	}
	if wired == nil {
		wired = map[string]string{}
	}
	return Extracted{Wired: wired, Dynamic: mm}
}

func findField(t *testing.T, tr Transformed, name string) Field {
	t.Helper()
	for _, f := range tr.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not found", name)
	return Field{}
}

func TestTransform_BooleanTruthTable(t *testing.T) {
	tests := []struct {
		raw      string
		want     *bool
		warnings int
	}{
		{raw: "Yes", want: boolPtr(true)},
		{raw: "yes", want: boolPtr(true)},
		{raw: "YES", want: boolPtr(true)},
		{raw: "no", want: boolPtr(false)},
		{raw: "No", want: boolPtr(false)},
		{raw: "Maybe", want: nil, warnings: 1},
		{raw: "", want: nil, warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			log := miglog.New()
			ex := extracted(nil, func(mm *document.Multimap) {
				mm.Add("featured", tt.raw)
			})
			tr := Transform(ex, "page.xml", log)

			f := findField(t, tr, "featured")
			if tt.want == nil {
				assert.Nil(t, f.Bool)
				// Ambiguous values pass through unchanged.
				assert.Equal(t, []string{tt.raw}, f.Values)
			} else {
				require.NotNil(t, f.Bool)
				assert.Equal(t, *tt.want, *f.Bool)
			}
			assert.Equal(t, tt.warnings, log.Warnings())
		})
	}
}

func TestTransform_DirectCopyKeepsList(t *testing.T) {
	log := miglog.New()
	ex := extracted(nil, func(mm *document.Multimap) {
		mm.Add("audience", "students")
		mm.Add("audience", "alumni")
	})
	tr := Transform(ex, "page.xml", log)

	f := findField(t, tr, "audience")
	assert.Equal(t, []string{"students", "alumni"}, f.Values,
		"structured field stores a list, never the comma-joined form")

	// The joined form appears only in the log.
	var joined bool
	for _, e := range log.Entries() {
		if e.Level == miglog.Info && e.Message == `field "audience" copied with values: students, alumni` {
			joined = true
		}
	}
	assert.True(t, joined)
}

func TestTransform_WiredFieldsCopied(t *testing.T) {
	tr := Transform(extracted(map[string]string{
		document.FieldTitle:       "Spring Concert",
		document.FieldDescription: "Annual show.",
		document.FieldKeywords:    "music",
	}, nil), "page.xml", miglog.New())

	assert.Equal(t, []string{"Annual show."}, findField(t, tr, document.FieldDescription).Values)
	assert.Equal(t, []string{"music"}, findField(t, tr, document.FieldKeywords).Values)
	// The title feeds the heading, it is not copied as a field.
	for _, f := range tr.Fields {
		assert.NotEqual(t, document.FieldTitle, f.Name)
	}
}

func TestTransform_MissingFieldsAbsentNotError(t *testing.T) {
	tr := Transform(extracted(nil, nil), "page.xml", miglog.New())
	assert.Empty(t, tr.Fields)
	assert.Empty(t, tr.Heading)
	assert.Equal(t, PageTypeStandard, tr.PageType)
}

func TestTransform_HeadingDerivation(t *testing.T) {
	tests := []struct {
		name     string
		wired    map[string]string
		headline string
		want     string
	}{
		{
			name:     "headline wins",
			wired:    map[string]string{document.FieldTitle: "Spring Concert"},
			headline: "Join us this spring",
			want:     "Join us this spring",
		},
		{
			name:  "empty headline falls back to title",
			wired: map[string]string{document.FieldTitle: "Spring Concert"},
			// headline "   " counts as empty
			headline: "   ",
			want:     "Spring Concert",
		},
		{
			name:  "no headline falls back to title",
			wired: map[string]string{document.FieldTitle: "Spring Concert"},
			want:  "Spring Concert",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := extracted(tt.wired, func(mm *document.Multimap) {
				if tt.headline != "" {
					mm.Add("headline", tt.headline)
				}
			})
			tr := Transform(ex, "page.xml", miglog.New())
			assert.Equal(t, tt.want, tr.Heading)
		})
	}
}

func TestPageTypeFromFilename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"pages/alumni-feature-story.xml", PageTypeFeature},
		{"pages/feature_profile.xml", PageTypeFeature},
		{"pages/FEATURE.xml", PageTypeFeature},
		{"pages/spring-concert.xml", PageTypeStandard},
		// The fragment must be delimiter-bounded, not a substring.
		{"pages/featurette.xml", PageTypeStandard},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, PageTypeFromFilename(tt.path))
		})
	}
}

func TestTransform_Pure(t *testing.T) {
	// Same inputs, same outputs: the transform carries no hidden state.
	ex := extracted(map[string]string{document.FieldTitle: "T"}, func(mm *document.Multimap) {
		mm.Add("featured", "Yes")
		mm.Add("audience", "students")
	})
	a := Transform(ex, "p.xml", miglog.New())
	b := Transform(ex, "p.xml", miglog.New())
	assert.Equal(t, a, b)
}

func boolPtr(b bool) *bool { return &b }
