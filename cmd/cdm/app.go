package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/maraichr/cdm/internal/ingestion"
	"github.com/maraichr/cdm/internal/ingestion/connectors"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/records"
	"github.com/maraichr/cdm/internal/resolver"
	minioclient "github.com/maraichr/cdm/internal/store/minio"
	vk "github.com/maraichr/cdm/internal/store/valkey"
)

// app holds everything one command invocation builds with.
type app struct {
	opts     *options
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *resolver.Metrics
	snapshot *resolver.Snapshot
	engine   *resolver.Engine
	fetch    *ingestion.FetchStage
	decode   *ingestion.DecodeStage

	closers []func()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// newLogger returns a JSON logger for servers and a text logger otherwise.
func newLogger(w io.Writer, level string, json bool) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: parseLevel(level)}
	if json {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// policyFor maps --on-conflict to a policy. The prompt policy reads answers
// from in and needs a terminal, so servers reject it.
func policyFor(name string, interactive bool, in io.Reader, out io.Writer, logger *slog.Logger) (merge.Policy, error) {
	if name == "prompt" {
		if !interactive {
			return nil, fmt.Errorf("--on-conflict prompt needs an interactive command")
		}
		return merge.Prompt(in, out), nil
	}
	return merge.ByName(name, logger)
}

func newApp(ctx context.Context, opts *options, logger *slog.Logger, interactive bool) (*app, error) {
	policy, err := policyFor(opts.onConflict, interactive, os.Stdin, os.Stderr, logger)
	if err != nil {
		return nil, err
	}

	a := &app{
		opts:     opts,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		snapshot: &resolver.Snapshot{},
	}
	a.metrics = resolver.NewMetrics(a.registry)
	a.engine = resolver.NewEngine(policy, logger, a.metrics)

	registry := records.NewRegistry()
	dec := records.NewYAMLDecoder(opts.strict)
	registry.Register(".yaml", dec)
	registry.Register(".yml", dec)

	cache, err := a.cache(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	loader := records.NewLoader(registry, cache, logger)
	a.decode = ingestion.NewDecodeStage(registry, loader, a.metrics, logger)

	if err := a.connectors(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// cache layers the in-process LRU over Valkey when VALKEY_ADDR is set. An
// unreachable Valkey only costs the shared cache.
func (a *app) cache(ctx context.Context) (records.Cache, error) {
	cfg := a.opts.cfg
	mem, err := records.NewMemoryCache(cfg.Build.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create decode cache: %w", err)
	}
	if cfg.Valkey.Addr == "" {
		return mem, nil
	}

	client, err := vk.NewClient(ctx, cfg.Valkey)
	if err != nil {
		a.logger.Warn("valkey connection failed, shared decode cache disabled", slog.String("error", err.Error()))
		return mem, nil
	}
	a.closers = append(a.closers, client.Close)
	a.logger.Info("connected to valkey", slog.String("addr", cfg.Valkey.Addr))
	return records.Tiered{mem, vk.NewBagCache(client, cfg.Valkey.TTL, a.logger)}, nil
}

// connectors wires only what the chosen source needs.
func (a *app) connectors(ctx context.Context) error {
	cfg := a.opts.cfg
	var (
		zipConn *connectors.ZipConnector
		s3Conn  *connectors.S3Connector
	)
	switch a.opts.source {
	case ingestion.SourceMinIO:
		mc, err := minioclient.NewClient(cfg.MinIO)
		if err != nil {
			return fmt.Errorf("connect to minio: %w", err)
		}
		zipConn = connectors.NewZipConnector(mc)
	case ingestion.SourceS3:
		c, err := connectors.NewS3Connector(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("connect to s3: %w", err)
		}
		s3Conn = c
	}
	a.fetch = ingestion.NewFetchStage(zipConn, s3Conn, a.logger)
	return nil
}

// pipeline returns fetch, decode, resolve and publish followed by extra.
func (a *app) pipeline(extra ...ingestion.Stage) *ingestion.Pipeline {
	stages := []ingestion.Stage{
		a.fetch,
		a.decode,
		ingestion.NewResolveStage(a.engine),
		ingestion.NewPublishStage(a.snapshot, a.logger),
	}
	return ingestion.NewPipeline(append(stages, extra...), a.logger)
}

// source turns the positional argument and flags into a pipeline source.
func (a *app) source(args []string) (ingestion.Source, error) {
	src := ingestion.Source{Type: a.opts.source, Object: a.opts.object, Prefix: a.opts.prefix}
	if len(args) > 0 {
		src.Path = args[0]
	}
	switch src.Type {
	case ingestion.SourceDir, ingestion.SourceZip:
		if src.Path == "" {
			return src, fmt.Errorf("--source %s needs a path argument", src.Type)
		}
	case ingestion.SourceMinIO, ingestion.SourceS3:
	default:
		return src, fmt.Errorf("unknown source %q (want dir, zip, s3 or minio)", src.Type)
	}
	return src, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
