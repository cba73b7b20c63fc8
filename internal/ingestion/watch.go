package ingestion

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher triggers a rebuild when data files under its roots change. A
// rebuild runs once no change has arrived for the debounce interval, so an
// editor save or a git checkout costs one rebuild, not one per file.
type Watcher struct {
	roots    []string
	debounce time.Duration
	rebuild  func(ctx context.Context) error
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
}

// NewWatcher creates a watcher over roots. Each root may be a directory,
// watched recursively, or a single file.
func NewWatcher(roots []string, debounce time.Duration, rebuild func(ctx context.Context) error, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Watcher{
		roots:    roots,
		debounce: debounce,
		rebuild:  rebuild,
		fsw:      fsw,
		logger:   logger,
	}, nil
}

// Run watches until ctx is done. A failed rebuild is logged and the watcher
// keeps going; whatever was last published stays in place.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for _, root := range w.roots {
		if err := w.add(root); err != nil {
			return err
		}
	}
	w.logger.Info("watching for changes",
		slog.Any("roots", w.roots),
		slog.Duration("debounce", w.debounce))

	quiet := time.NewTimer(w.debounce)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				quiet.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.String("error", err.Error()))

		case <-quiet.C:
			w.logger.Info("change detected, rebuilding")
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed, keeping previous build", slog.String("error", err.Error()))
			}
		}
	}
}

func (w *Watcher) add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		// Editors often replace files on save; watch the parent so the
		// recreated file is still seen.
		return w.fsw.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("watch directory", slog.String("path", path), slog.String("error", err.Error()))
		}
		return nil
	})
}

// handle reports whether event should schedule a rebuild.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if hidden(filepath.Base(event.Name)) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.add(event.Name); err != nil {
				w.logger.Warn("watch new directory", slog.String("path", event.Name), slog.String("error", err.Error()))
			}
			return true
		}
	}
	if !watched(event.Name) || event.Op == fsnotify.Chmod {
		return false
	}
	w.logger.Debug("file changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
	return true
}

func watched(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
