package records

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LoadStats summarises one Load call.
type LoadStats struct {
	Files     int
	Records   int
	CacheHits int
}

// Loader reads and decodes files, reusing cached bags for unchanged content.
type Loader struct {
	registry *Registry
	cache    Cache
	logger   *slog.Logger
}

// NewLoader creates a loader. cache may be nil.
func NewLoader(registry *Registry, cache Cache, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{registry: registry, cache: cache, logger: logger}
}

// Load decodes paths in the given order. The first failure aborts the load.
func (l *Loader) Load(ctx context.Context, paths []string) ([]FileBag, LoadStats, error) {
	var stats LoadStats
	bags := make([]FileBag, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		bag, hit, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, stats, err
		}
		if hit {
			stats.CacheHits++
		}
		stats.Files++
		stats.Records += bag.Records()
		bags = append(bags, *bag)
	}

	l.logger.Debug("files decoded",
		slog.Int("files", stats.Files),
		slog.Int("records", stats.Records),
		slog.Int("cache_hits", stats.CacheHits))
	return bags, stats, nil
}

// LoadFile decodes one file and reports whether the cache served it.
func (l *Loader) LoadFile(ctx context.Context, path string) (*FileBag, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return l.decode(ctx, FileInput{Path: path, Content: content})
}

func (l *Loader) decode(ctx context.Context, input FileInput) (*FileBag, bool, error) {
	key := ContentKey(input.Path, input.Content)
	if l.cache != nil {
		if cached, ok := l.cache.Get(ctx, key); ok {
			bag := *cached
			bag.Path = input.Path
			return &bag, true, nil
		}
	}

	bag, err := l.registry.DecodeFile(input)
	if err != nil {
		return nil, false, err
	}
	if l.cache != nil {
		l.cache.Add(ctx, key, bag)
	}
	return bag, false, nil
}

// ContentKey identifies decoded content independently of where it lives.
func ContentKey(path string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	return fmt.Sprintf("%s:%x", strings.TrimPrefix(ext, "."), sha256.Sum256(content))
}
