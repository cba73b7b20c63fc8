package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/maraichr/cdm/internal/graph"
	"github.com/maraichr/cdm/internal/ingestion"
)

func exportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir|archive>",
		Short: "Resolve a project and replace the Neo4j graph with it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel, false)

			a, err := newApp(ctx, opts, logger, true)
			if err != nil {
				return err
			}
			defer a.close()

			src, err := a.source(args)
			if err != nil {
				return err
			}

			g, err := graph.NewClient(opts.cfg.Neo4j)
			if err != nil {
				return err
			}
			defer g.Close(context.Background())
			if err := g.Verify(ctx); err != nil {
				return fmt.Errorf("connect to neo4j: %w", err)
			}
			logger.Info("connected to neo4j", slog.String("uri", opts.cfg.Neo4j.URI))

			rc, err := a.pipeline(ingestion.NewGraphStage(g, logger)).Run(ctx, src)
			if err != nil {
				return err
			}

			counts, err := g.Counts(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "exported build %s\n", rc.Result.RunID)
			for _, k := range sortedKinds(counts) {
				fmt.Fprintf(out, "  %-16s %d\n", k, counts[k])
			}
			return nil
		},
	}
}
