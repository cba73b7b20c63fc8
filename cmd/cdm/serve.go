package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/maraichr/cdm/internal/api"
	"github.com/maraichr/cdm/internal/ingestion"
)

func serveCmd(opts *options) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve <dir|archive>",
		Short: "Serve the resolved project over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel, true)
			if addr == "" {
				addr = opts.cfg.Server.Addr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, opts, logger, false)
			if err != nil {
				return err
			}
			defer a.close()

			src, err := a.source(args)
			if err != nil {
				return err
			}
			if watch && src.Type != ingestion.SourceDir {
				return fmt.Errorf("--watch needs --source dir")
			}

			// A failed first build still serves; /readyz stays 503 until a
			// rebuild succeeds.
			pipeline := a.pipeline()
			rc, err := pipeline.Run(ctx, src)
			if err != nil {
				logger.Error("initial build failed", slog.String("error", err.Error()))
			}

			srv := &http.Server{
				Addr:         addr,
				Handler:      api.NewRouter(logger, a.snapshot, a.registry),
				ReadTimeout:  opts.cfg.Server.ReadTimeout,
				WriteTimeout: opts.cfg.Server.WriteTimeout,
			}

			errc := make(chan error, 2)
			go func() {
				logger.Info("starting API server", slog.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
			}()

			if watch {
				roots := watchRoots(src.Path, rc)
				w, err := ingestion.NewWatcher(roots, opts.cfg.Build.Debounce, func(ctx context.Context) error {
					_, err := pipeline.Run(ctx, src)
					return err
				}, logger)
				if err != nil {
					return fmt.Errorf("create watcher: %w", err)
				}
				go func() {
					if err := w.Run(ctx); err != nil {
						errc <- fmt.Errorf("watcher: %w", err)
					}
				}()
			}

			select {
			case <-ctx.Done():
			case err := <-errc:
				logger.Error("server error", slog.String("error", err.Error()))
				stop()
			}

			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default SERVER_HOST:SERVER_PORT)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Rebuild when data files change")
	return cmd
}

// watchRoots is the project directory plus any library_files outside it.
func watchRoots(dir string, rc *ingestion.RunContext) []string {
	roots := []string{dir}
	if rc == nil || rc.Project == nil {
		return roots
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	for _, lib := range rc.Project.LibraryFiles {
		libAbs, err := filepath.Abs(lib)
		if err != nil {
			libAbs = lib
		}
		if rel, err := filepath.Rel(abs, libAbs); err == nil && !strings.HasPrefix(rel, "..") {
			continue
		}
		roots = append(roots, lib)
	}
	return roots
}
