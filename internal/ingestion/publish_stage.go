package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maraichr/cdm/internal/resolver"
)

// PublishStage swaps a finished build into the snapshot read by the API.
type PublishStage struct {
	snapshot *resolver.Snapshot
	logger   *slog.Logger
}

func NewPublishStage(snapshot *resolver.Snapshot, logger *slog.Logger) *PublishStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublishStage{snapshot: snapshot, logger: logger}
}

func (s *PublishStage) Name() string { return "publish" }

func (s *PublishStage) Execute(_ context.Context, rc *RunContext) error {
	if rc.Result == nil {
		return fmt.Errorf("nothing to publish")
	}
	prev := s.snapshot.Publish(rc.Result)

	attrs := []any{slog.String("run_id", rc.Result.RunID.String())}
	if prev != nil {
		attrs = append(attrs, slog.String("replaced_run_id", prev.RunID.String()))
	}
	s.logger.Info("build published", attrs...)
	return nil
}
