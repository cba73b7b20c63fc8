package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/maraichr/cdm/internal/resolver"
)

func buildCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "build <dir|archive>",
		Short: "Resolve a project and report what was built",
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
			rc, err := a.pipeline().Run(ctx, src)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), rc.Result)
			return nil
		},
	}
}

func printSummary(w io.Writer, res *resolver.Result) {
	sum := res.Summary()
	fmt.Fprintf(w, "build %s: %d files in %s\n", sum.RunID, len(sum.Files), sum.Duration)

	for _, k := range sortedKinds(sum.Counts) {
		fmt.Fprintf(w, "  %-16s %d\n", k, sum.Counts[k])
	}
}

func sortedKinds[V any](m map[string]V) []string {
	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
