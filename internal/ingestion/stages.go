package ingestion

import (
	"context"

	"github.com/google/uuid"

	"github.com/maraichr/cdm/internal/config"
	"github.com/maraichr/cdm/internal/records"
	"github.com/maraichr/cdm/internal/resolver"
)

// Stage represents a step in the build pipeline.
type Stage interface {
	Name() string
	Execute(ctx context.Context, rc *RunContext) error
}

// Source types accepted by FetchStage.
const (
	SourceDir   = "dir"
	SourceZip   = "zip"
	SourceS3    = "s3"
	SourceMinIO = "minio"
)

// Source says where a project's files come from.
type Source struct {
	Type string
	// Path is a local directory (dir) or archive (zip).
	Path string
	// Object is a zip archive in the MinIO bucket.
	Object string
	// Prefix selects the keys synced from the S3 bucket.
	Prefix string
}

// RunContext carries state through the pipeline stages.
type RunContext struct {
	RunID  uuid.UUID
	Source Source

	// Set by fetch stage
	WorkDir string
	// Temporary is true when WorkDir was created for this run and is removed
	// when the run ends.
	Temporary bool

	// Set by decode stage
	Project   *config.Project
	Files     []string
	Bags      []records.FileBag
	LoadStats records.LoadStats

	// Set by resolve stage
	Result *resolver.Result
}
