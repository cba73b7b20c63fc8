package records

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Decoder turns one file's bytes into a FileBag.
type Decoder interface {
	Decode(input FileInput) (*FileBag, error)

	// Formats returns the format names this decoder understands.
	Formats() []string
}

// FileInput is one file handed to a Decoder.
type FileInput struct {
	Path    string
	Content []byte
}

// Registry maps file extensions to decoders.
type Registry struct {
	decoders map[string]Decoder // extension -> decoder
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// DefaultRegistry handles .yaml and .yml with a non-strict YAML decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	d := NewYAMLDecoder(false)
	r.Register(".yaml", d)
	r.Register(".yml", d)
	return r
}

func (r *Registry) Register(ext string, d Decoder) {
	r.decoders[strings.ToLower(ext)] = d
}

// ForFile returns the decoder for a path, or nil if none matches.
func (r *Registry) ForFile(path string) Decoder {
	return r.decoders[strings.ToLower(filepath.Ext(path))]
}

// DecodeFile picks the decoder by extension and decodes the file.
func (r *Registry) DecodeFile(input FileInput) (*FileBag, error) {
	d := r.ForFile(input.Path)
	if d == nil {
		return nil, fmt.Errorf("no decoder for file: %s", input.Path)
	}
	return d.Decode(input)
}

// SupportedExtensions returns every registered extension in sorted order.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
