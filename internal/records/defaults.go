package records

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// DefaultPrefix marks the provenance of built-in library files.
const DefaultPrefix = "builtin:"

//go:embed defaults/*.yaml
var defaultFS embed.FS

// DefaultLibraries decodes the built-in library files in name order.
func DefaultLibraries(registry *Registry) ([]FileBag, error) {
	names, err := fs.Glob(defaultFS, "defaults/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	bags := make([]FileBag, 0, len(names))
	for _, name := range names {
		content, err := defaultFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read built-in %s: %w", name, err)
		}
		bag, err := registry.DecodeFile(FileInput{Path: DefaultPrefix + name, Content: content})
		if err != nil {
			return nil, err
		}
		bags = append(bags, *bag)
	}
	return bags, nil
}
