package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maraichr/cdm/internal/ingestion/connectors"
	minioclient "github.com/maraichr/cdm/internal/store/minio"
)

func uploadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <archive.zip>",
		Short: "Store a project archive in MinIO for --source minio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel, false)

			archive := args[0]
			name := opts.object
			if name == "" {
				name = filepath.Base(archive)
			}

			f, err := os.Open(archive)
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			mc, err := minioclient.NewClient(opts.cfg.MinIO)
			if err != nil {
				return err
			}
			if err := mc.EnsureBucket(ctx); err != nil {
				return err
			}
			if err := connectors.NewZipConnector(mc).Upload(ctx, name, f, info.Size()); err != nil {
				return err
			}

			logger.Info("archive uploaded",
				slog.String("bucket", mc.Bucket()),
				slog.String("object", name),
				slog.Int64("bytes", info.Size()))
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s to %s/%s\n", archive, mc.Bucket(), name)
			return nil
		},
	}
}
