package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maraichr/cdm/internal/entity"
	"github.com/maraichr/cdm/internal/library"
	"github.com/maraichr/cdm/internal/merge"
	"github.com/maraichr/cdm/internal/project"
	"github.com/maraichr/cdm/internal/records"
	"github.com/maraichr/cdm/pkg/models"
)

// Engine resolves an ordered FileBag sequence into a Library and a Project.
// Library is always built and verified before any Project record is read.
type Engine struct {
	policy  merge.Policy
	logger  *slog.Logger
	metrics *Metrics
}

// NewEngine returns an engine using policy for conflicting definitions.
// metrics may be nil.
func NewEngine(policy merge.Policy, logger *slog.Logger, metrics *Metrics) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == nil {
		policy = merge.KeepFirst(logger)
	}
	return &Engine{
		policy:  metrics.countConflicts(policy),
		logger:  logger,
		metrics: metrics,
	}
}

// Result is one completed build. It is never mutated after Resolve returns,
// so it can be shared with concurrent readers.
type Result struct {
	RunID    uuid.UUID
	Library  *library.Library
	Project  *project.Project
	Files    []string
	BuiltAt  time.Time
	Duration time.Duration
}

// Resolve builds the Library from every bag, then the Project from the same
// bags. The context is checked between the two phases only; a build itself
// never blocks apart from the conflict policy.
func (e *Engine) Resolve(ctx context.Context, bags []records.FileBag) (*Result, error) {
	start := time.Now()
	runID := uuid.New()
	logger := e.logger.With(slog.String("run_id", runID.String()))

	res, err := e.resolve(ctx, bags, logger)
	e.metrics.observeBuild(time.Since(start), err)
	if err != nil {
		logger.Error("build failed", slog.String("error", err.Error()))
		return nil, err
	}

	res.RunID = runID
	res.BuiltAt = start.UTC()
	res.Duration = time.Since(start)
	e.metrics.observeResult(res)

	logger.Info("build complete",
		slog.Int("files", len(bags)),
		slog.Duration("duration", res.Duration))
	return res, nil
}

func (e *Engine) resolve(ctx context.Context, bags []records.FileBag, logger *slog.Logger) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lib, err := library.NewBuilder(e.policy, logger).Build(bags)
	if err != nil {
		return nil, fmt.Errorf("build library: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prj, err := project.NewBuilder(e.policy, logger).Build(bags, lib)
	if err != nil {
		return nil, fmt.Errorf("build project: %w", err)
	}

	files := make([]string, len(bags))
	for i := range bags {
		files[i] = bags[i].Path
	}
	return &Result{Library: lib, Project: prj, Files: files}, nil
}

// Summary describes the result for API consumers.
func (r *Result) Summary() models.BuildSummary {
	counts := make(map[string]int)
	for k, n := range r.Library.Counts() {
		counts[string(k)] = n
	}
	for k, n := range r.Project.Counts() {
		counts[string(k)] = n
	}
	return models.BuildSummary{
		RunID:    r.RunID,
		BuiltAt:  r.BuiltAt,
		Duration: r.Duration.String(),
		Files:    r.Files,
		Counts:   counts,
	}
}

// Views renders every Library entity, then every Project entity, each kind in
// build order and IDs sorted within a kind.
func (r *Result) Views() []models.EntityView {
	var out []models.EntityView
	for _, k := range entity.LibraryKinds {
		v, _ := r.Library.Views(k)
		out = append(out, v...)
	}
	for _, k := range entity.ProjectKinds {
		v, _ := r.Project.Views(k)
		out = append(out, v...)
	}
	return out
}
