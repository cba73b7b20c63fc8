package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Pipeline runs the build stages in order for one source. A failing stage
// stops the run; later stages never see a partial result.
type Pipeline struct {
	stages []Stage
	logger *slog.Logger
}

func NewPipeline(stages []Stage, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// Run processes one source through every stage.
func (p *Pipeline) Run(ctx context.Context, src Source) (*RunContext, error) {
	rc := &RunContext{RunID: uuid.New(), Source: src}
	logger := p.logger.With(slog.String("pipeline_run_id", rc.RunID.String()))

	logger.Info("pipeline started", slog.String("source_type", src.Type))
	defer func() {
		if rc.Temporary && rc.WorkDir != "" {
			if err := os.RemoveAll(rc.WorkDir); err != nil {
				logger.Warn("remove work dir", slog.String("dir", rc.WorkDir), slog.String("error", err.Error()))
			}
		}
	}()

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return rc, err
		}

		logger.Debug("stage started", slog.String("stage", stage.Name()))
		if err := stage.Execute(ctx, rc); err != nil {
			return rc, fmt.Errorf("stage %s failed: %w", stage.Name(), err)
		}
		logger.Debug("stage completed", slog.String("stage", stage.Name()))
	}

	attrs := []any{slog.Int("files", len(rc.Files))}
	if rc.Result != nil {
		attrs = append(attrs, slog.String("run_id", rc.Result.RunID.String()))
	}
	logger.Info("pipeline completed", attrs...)
	return rc, nil
}

// FuncStage adapts a function to the Stage interface.
type FuncStage struct {
	name string
	fn   func(context.Context, *RunContext) error
}

func NewFuncStage(name string, fn func(context.Context, *RunContext) error) *FuncStage {
	return &FuncStage{name: name, fn: fn}
}

func (s *FuncStage) Name() string { return s.name }

func (s *FuncStage) Execute(ctx context.Context, rc *RunContext) error {
	return s.fn(ctx, rc)
}
