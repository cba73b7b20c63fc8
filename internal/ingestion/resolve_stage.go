package ingestion

import (
	"context"

	"github.com/maraichr/cdm/internal/resolver"
)

// ResolveStage builds the Library and Project from the decoded bags.
type ResolveStage struct {
	engine *resolver.Engine
}

func NewResolveStage(engine *resolver.Engine) *ResolveStage {
	return &ResolveStage{engine: engine}
}

func (s *ResolveStage) Name() string { return "resolve" }

func (s *ResolveStage) Execute(ctx context.Context, rc *RunContext) error {
	res, err := s.engine.Resolve(ctx, rc.Bags)
	if err != nil {
		return err
	}
	rc.Result = res
	return nil
}
