package batch

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// resultSuffixes mark files that are already a migration result, not an
// origin page.
var resultSuffixes = []string{".migrated.xml", ".report.xml"}

// Discover returns origin files under root as root-relative paths in
// lexical order. Reserved-prefix directories ("_" and ".") and
// already-a-result files are excluded.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && reservedDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".xml") || isResultFile(name) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func reservedDir(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

func isResultFile(name string) bool {
	for _, suffix := range resultSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
