package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maraichr/cdm/pkg/models"
)

// GraphExporter is the part of graph.Client the export stage needs.
type GraphExporter interface {
	EnsureIndexes(ctx context.Context) error
	ClearBuild(ctx context.Context) error
	Export(ctx context.Context, buildID string, views []models.EntityView) error
}

// GraphStage replaces the exported graph with the current build.
type GraphStage struct {
	graph  GraphExporter
	logger *slog.Logger
}

func NewGraphStage(g GraphExporter, logger *slog.Logger) *GraphStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphStage{graph: g, logger: logger}
}

func (s *GraphStage) Name() string { return "graph_export" }

func (s *GraphStage) Execute(ctx context.Context, rc *RunContext) error {
	if rc.Result == nil {
		return fmt.Errorf("no build to export")
	}
	if err := s.graph.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure neo4j indexes: %w", err)
	}
	if err := s.graph.ClearBuild(ctx); err != nil {
		return fmt.Errorf("clear neo4j graph: %w", err)
	}

	views := rc.Result.Views()
	refs := 0
	for _, v := range views {
		refs += len(v.References)
	}
	s.logger.Info("neo4j: exporting build",
		slog.String("run_id", rc.Result.RunID.String()),
		slog.Int("entities", len(views)),
		slog.Int("references", refs))

	if err := s.graph.Export(ctx, rc.Result.RunID.String(), views); err != nil {
		return fmt.Errorf("export to neo4j: %w", err)
	}
	s.logger.Info("neo4j: build exported")
	return nil
}
