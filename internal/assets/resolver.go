// Package assets resolves source image filenames to destination-platform
// asset identifiers. A miss yields the explicit NoAssetID marker, never an
// error: an unresolved image is a warning for the reviewer, not a failure.
package assets

import (
	"os"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// NoAssetID is the explicit marker for an image with no destination asset.
const NoAssetID = "NO-ASSET-ID"

// minSuffixStem is the minimum stem length (extension stripped) for the
// suffix tier. Short generic names like "img.jpg" match too many assets to
// trust a suffix hit.
const minSuffixStem = 5

// Match is one resolver result.
type Match struct {
	// ID is the destination asset identifier.
	ID string
	// Exact is true for the exact-basename tier. Suffix-tier matches are
	// lower confidence and must be surfaced to a human.
	Exact bool
	// MatchedName is the table entry that produced a suffix-tier match.
	MatchedName string
}

// Resolver maps a source image filename to a destination asset identifier.
type Resolver interface {
	Resolve(filename string) (Match, bool)
}

// Table is a Resolver backed by a static filename-to-id mapping.
type Table struct {
	ids map[string]string
	// names holds table keys sorted, so suffix-tier scans are
	// deterministic regardless of map iteration order.
	names []string
}

// tableFile is the on-disk TOML shape:
//
//	[assets]
//	"concert.jpg" = "42"
type tableFile struct {
	Assets map[string]string `toml:"assets"`
}

// LoadTable reads a TOML asset table from disk.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf tableFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	return NewTable(tf.Assets), nil
}

// NewTable builds a Table from a filename-to-id map. Keys are compared by
// lowercased basename.
func NewTable(m map[string]string) *Table {
	t := &Table{ids: make(map[string]string, len(m))}
	for name, id := range m {
		key := normalize(name)
		if _, dup := t.ids[key]; !dup {
			t.names = append(t.names, key)
		}
		t.ids[key] = id
	}
	sort.Strings(t.names)
	return t
}

// Resolve looks up filename. The exact tier always wins; the suffix tier
// only runs on an exact miss and reports Exact=false so callers can warn.
func (t *Table) Resolve(filename string) (Match, bool) {
	key := normalize(filename)
	if key == "" {
		return Match{}, false
	}

	if id, ok := t.ids[key]; ok {
		return Match{ID: id, Exact: true}, true
	}

	// Suffix tier: one name ends with the other. Too ambiguous for short
	// stems, so those never reach this tier.
	stem := strings.TrimSuffix(key, path.Ext(key))
	if len(stem) < minSuffixStem {
		return Match{}, false
	}
	for _, name := range t.names {
		if strings.HasSuffix(name, key) || strings.HasSuffix(key, name) {
			return Match{ID: t.ids[name], Exact: false, MatchedName: name}, true
		}
	}
	return Match{}, false
}

func normalize(name string) string {
	return strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
}

var _ Resolver = (*Table)(nil)
