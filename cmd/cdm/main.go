// Package main provides the cdm binary: it resolves cable and harness
// libraries and projects, serves the result read-only and exports it to
// Neo4j.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/maraichr/cdm/internal/config"
)

const (
	Version = "0.1.0"
	appName = "cdm"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by every command that builds.
type options struct {
	logLevel   string
	onConflict string
	strict     bool
	source     string
	object     string
	prefix     string

	cfg *config.Config
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Cable and harness data resolver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load() // ignore error if .env missing
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg

			// Flags win over the environment.
			flags := cmd.Flags()
			if !flags.Changed("log-level") {
				opts.logLevel = cfg.Build.LogLevel
			}
			if !flags.Changed("on-conflict") {
				opts.onConflict = cfg.Build.OnConflict
			}
			if !flags.Changed("strict") {
				opts.strict = cfg.Build.Strict
			}
			if !flags.Changed("prefix") && opts.prefix == "" {
				opts.prefix = cfg.S3.Prefix
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.onConflict, "on-conflict", "keep-first", "Conflict policy (keep-first, adopt-newest, prompt)")
	pf.BoolVar(&opts.strict, "strict", false, "Reject unknown keys in data files")
	pf.StringVar(&opts.source, "source", "dir", "Project source (dir, zip, s3, minio)")
	pf.StringVar(&opts.object, "object", "", "Archive object name for --source minio")
	pf.StringVar(&opts.prefix, "prefix", "", "Key prefix for --source s3")

	cmd.AddCommand(buildCmd(opts), serveCmd(opts), exportCmd(opts), uploadCmd(opts), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// The root pre-run loads config; version needs none.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}
