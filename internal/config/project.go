package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the per-project config file, looked up in src/ first.
const ProjectFileName = "cdm_config.yaml"

// Project is the optional cdm_config.yaml of a project directory.
type Project struct {
	// LibraryFiles are merged after the built-in libraries and before the
	// project's own files, in listed order. Relative paths are resolved
	// against the project root; directories are searched recursively.
	LibraryFiles       []string `yaml:"library_files"`
	NoDefaultLibraries bool     `yaml:"no_default_libraries"`

	// Path is the file the config was read from, empty when none exists.
	Path string `yaml:"-"`
}

// FindProject returns the config path for root: <root>/src/cdm_config.yaml
// wins over <root>/cdm_config.yaml. ok is false when neither exists.
func FindProject(root string) (path string, ok bool, err error) {
	for _, candidate := range []string{
		filepath.Join(root, "src", ProjectFileName),
		filepath.Join(root, ProjectFileName),
	} {
		info, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("stat %s: %w", candidate, err)
		}
		if !info.IsDir() {
			return candidate, true, nil
		}
	}
	return "", false, nil
}

// LoadProject reads the project config under root. A project without a
// config file gets the zero Project: default libraries on, no extras.
func LoadProject(root string) (*Project, error) {
	path, ok, err := FindProject(root)
	if err != nil || !ok {
		return &Project{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p := &Project{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p.Path = path

	for i, f := range p.LibraryFiles {
		if f == "" {
			return nil, fmt.Errorf("%s: library_files[%d] is empty", path, i)
		}
		if !filepath.IsAbs(f) {
			p.LibraryFiles[i] = filepath.Join(root, f)
		}
	}
	return p, nil
}
