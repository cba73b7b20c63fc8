package records

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DataPattern matches every cdm data file below a root.
const DataPattern = "**/*.{yaml,yml}"

// Discover returns the data files below root in lexical order, skipping
// hidden directories and any file whose base name is in skipNames.
func Discover(root string, skipNames ...string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), DataPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", root, err)
	}

	skip := make(map[string]bool, len(skipNames))
	for _, n := range skipNames {
		skip[n] = true
	}

	paths := make([]string, 0, len(matches))
	for _, rel := range matches {
		if hiddenPath(rel) || skip[filepath.Base(rel)] {
			continue
		}
		paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
	}
	sort.Strings(paths)
	return paths, nil
}

// hiddenPath reports whether any segment of a slash-separated relative path
// starts with a dot.
func hiddenPath(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}
