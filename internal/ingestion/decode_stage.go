package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/maraichr/cdm/internal/config"
	"github.com/maraichr/cdm/internal/records"
)

// LoadObserver receives loader statistics, typically resolver metrics.
type LoadObserver interface {
	ObserveLoad(records.LoadStats)
}

// DecodeStage assembles the ordered FileBag sequence for a project: built-in
// libraries, then the library files named in cdm_config.yaml, then every
// data file under the work directory.
type DecodeStage struct {
	registry *records.Registry
	loader   *records.Loader
	observer LoadObserver
	logger   *slog.Logger
}

func NewDecodeStage(registry *records.Registry, loader *records.Loader, observer LoadObserver, logger *slog.Logger) *DecodeStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecodeStage{registry: registry, loader: loader, observer: observer, logger: logger}
}

func (s *DecodeStage) Name() string { return "decode" }

func (s *DecodeStage) Execute(ctx context.Context, rc *RunContext) error {
	proj, err := config.LoadProject(rc.WorkDir)
	if err != nil {
		return err
	}
	rc.Project = proj

	var bags []records.FileBag
	if !proj.NoDefaultLibraries {
		defaults, err := records.DefaultLibraries(s.registry)
		if err != nil {
			return fmt.Errorf("built-in libraries: %w", err)
		}
		bags = append(bags, defaults...)
	}

	var paths []string
	libs := make(map[string]struct{})
	for _, lib := range proj.LibraryFiles {
		found, err := records.Discover(lib, config.ProjectFileName)
		if err != nil {
			return fmt.Errorf("library file: %w", err)
		}
		for _, path := range found {
			key := pathKey(path)
			if _, dup := libs[key]; dup {
				continue
			}
			libs[key] = struct{}{}
			paths = append(paths, path)
		}
	}

	files, err := records.Discover(rc.WorkDir, config.ProjectFileName)
	if err != nil {
		return err
	}
	// A library file kept inside the project tree is applied once, in the
	// library phase.
	for _, path := range files {
		if _, ok := libs[pathKey(path)]; !ok {
			paths = append(paths, path)
		}
	}

	loaded, stats, err := s.loader.Load(ctx, paths)
	if err != nil {
		return err
	}
	if s.observer != nil {
		s.observer.ObserveLoad(stats)
	}

	rc.Files = paths
	rc.Bags = append(bags, loaded...)
	rc.LoadStats = stats

	s.logger.Info("project files decoded",
		slog.String("dir", rc.WorkDir),
		slog.Bool("default_libraries", !proj.NoDefaultLibraries),
		slog.Int("library_files", len(proj.LibraryFiles)),
		slog.Int("files", stats.Files),
		slog.Int("records", stats.Records),
		slog.Int("cache_hits", stats.CacheHits))
	return nil
}

func pathKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
