// Package cards is the display-option post-pass: a corrective sweep over
// already-migrated output that fixes card groups whose populated cards
// carry no imagery. It mutates prior output rather than regenerating from
// source, so it must be a fixed point across repeated runs.
package cards

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/fyrsmithlabs/pageporter/internal/template"
)

// Fix applies the rule to every card group of one document: when all
// populated cards (non-empty heading or body) lack an image reference and
// the display option is not already the no-image variant, set it. Returns
// the number of groups changed; zero on a second run over the same file.
func Fix(tpl *template.Template) int {
	changed := 0
	for _, group := range tpl.CardGroups() {
		if !allPopulatedLackImages(group) {
			continue
		}
		if group.SelectAttrValue("display-option", "") == template.CardOptionNoImage {
			continue
		}
		group.CreateAttr("display-option", template.CardOptionNoImage)
		changed++
	}
	return changed
}

// allPopulatedLackImages reports whether every populated card of group has
// no image reference. Vacuously true for a group with no populated cards.
func allPopulatedLackImages(group *etree.Element) bool {
	for _, card := range group.SelectElements("card") {
		if !populated(card) {
			continue
		}
		if card.SelectElement("image") != nil {
			return false
		}
	}
	return true
}

// populated reports whether a card carries a non-empty heading or body.
func populated(card *etree.Element) bool {
	for _, tag := range []string{"heading", "body"} {
		if el := card.SelectElement(tag); el != nil && strings.TrimSpace(el.Text()) != "" {
			return true
		}
	}
	return false
}

// SweepResult aggregates one post-pass run.
type SweepResult struct {
	FilesSeen     int
	FilesChanged  int
	GroupsChanged int
}

// Sweep walks already-produced destination files under root and applies
// Fix to each, rewriting only files that actually changed. Unchanged files
// are left byte-identical, which makes the sweep safe to re-run.
func Sweep(root string) (SweepResult, error) {
	var res SweepResult
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".xml") {
			return nil
		}
		res.FilesSeen++

		tpl, err := template.Load(path)
		if err != nil {
			return fmt.Errorf("post-pass: %w", err)
		}
		n := Fix(tpl)
		if n == 0 {
			return nil
		}
		if err := tpl.WriteFile(path); err != nil {
			return fmt.Errorf("post-pass: %w", err)
		}
		res.FilesChanged++
		res.GroupsChanged += n
		return nil
	})
	return res, err
}
