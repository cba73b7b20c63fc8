package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/maraichr/cdm/internal/ingestion/connectors"
)

// FetchStage makes the project available as a local directory: a directory
// source is used in place, archives and buckets are unpacked into a
// temporary work directory.
type FetchStage struct {
	zipConn *connectors.ZipConnector
	s3Conn  *connectors.S3Connector
	logger  *slog.Logger
}

// NewFetchStage creates the stage. Either connector may be nil if that
// source type is not configured.
func NewFetchStage(zipConn *connectors.ZipConnector, s3Conn *connectors.S3Connector, logger *slog.Logger) *FetchStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStage{zipConn: zipConn, s3Conn: s3Conn, logger: logger}
}

func (s *FetchStage) Name() string { return "fetch" }

func (s *FetchStage) Execute(ctx context.Context, rc *RunContext) error {
	src := rc.Source
	if src.Type == "" || src.Type == SourceDir {
		if src.Path == "" {
			return fmt.Errorf("directory source missing path")
		}
		info, err := os.Stat(src.Path)
		if err != nil {
			return fmt.Errorf("stat source: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("source %s is not a directory", src.Path)
		}
		rc.WorkDir = src.Path
		return nil
	}

	workDir, err := os.MkdirTemp("", "cdm-"+rc.RunID.String()+"-")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	rc.WorkDir = workDir
	rc.Temporary = true

	switch src.Type {
	case SourceZip:
		if src.Path == "" {
			return fmt.Errorf("zip source missing path")
		}
		if err := s.zip().ExtractFile(ctx, src.Path, workDir); err != nil {
			return fmt.Errorf("extract zip: %w", err)
		}

	case SourceMinIO:
		if src.Object == "" {
			return fmt.Errorf("minio source missing object name")
		}
		if err := s.zip().Extract(ctx, src.Object, workDir); err != nil {
			return fmt.Errorf("extract object: %w", err)
		}

	case SourceS3:
		if s.s3Conn == nil {
			return fmt.Errorf("S3 connector not configured")
		}
		n, err := s.s3Conn.Sync(ctx, src.Prefix, workDir)
		if err != nil {
			return fmt.Errorf("s3 sync: %w", err)
		}
		s.logger.Info("s3 prefix synced", slog.String("prefix", src.Prefix), slog.Int("files", n))

	default:
		return fmt.Errorf("unsupported source type: %s", src.Type)
	}
	return nil
}

func (s *FetchStage) zip() *connectors.ZipConnector {
	if s.zipConn == nil {
		return connectors.NewZipConnector(nil)
	}
	return s.zipConn
}
