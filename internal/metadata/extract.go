// Package metadata extracts origin page metadata and transforms it with
// per-field rules into the shape the destination schema stores.
package metadata

import (
	"github.com/fyrsmithlabs/pageporter/internal/document"
)

// Extracted is the raw metadata read from an origin page: the wired
// fixed-schema fields (absent stays absent) and the dynamic ordered
// multimap with duplicate names preserved.
type Extracted struct {
	Wired   map[string]string
	Dynamic *document.Multimap
}

// Extract reads both metadata regions of an origin page.
func Extract(o *document.Origin) Extracted {
	return Extracted{
		Wired:   o.Wired(),
		Dynamic: o.Dynamic(),
	}
}
