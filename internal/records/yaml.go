package records

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLDecoder decodes cdm YAML files. In strict mode unknown keys, at any
// depth, are rejected; otherwise they are ignored so that unrelated YAML in
// a project tree does not break a build.
type YAMLDecoder struct {
	strict bool
}

func NewYAMLDecoder(strict bool) *YAMLDecoder {
	return &YAMLDecoder{strict: strict}
}

func (d *YAMLDecoder) Formats() []string { return []string{"yaml"} }

func (d *YAMLDecoder) Decode(input FileInput) (*FileBag, error) {
	dec := yaml.NewDecoder(bytes.NewReader(input.Content))
	dec.KnownFields(d.strict)

	bag := &FileBag{}
	if err := dec.Decode(bag); err != nil {
		// An empty document is a valid file with no tables.
		if errors.Is(err, io.EOF) {
			bag.Path = input.Path
			return bag, nil
		}
		return nil, fmt.Errorf("decode %s: %w", input.Path, err)
	}
	bag.Path = input.Path
	return bag, nil
}
