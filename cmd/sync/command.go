package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zotero-notion-sync/config"
	"zotero-notion-sync/internal/app"
	"zotero-notion-sync/internal/paper"
)

type options struct {
	configPath string
	logLevel   string
	dryRun     bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "zotero-notion-sync",
		Short: "Sync a Notion database with a Zotero group library",
		Long: `Runs one synchronization pass: every top-level Zotero item gets a matching
Notion row, and every Zotero item gets a note linking back to its row.
Re-running is safe; an up-to-date pair is left untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to config file (required)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "logging level: debug, info, warn, error (overrides logger.level)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "log decisions without writing to either store")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := app.NewLogger(cfg.Logger, opts.logLevel)

	uc, err := app.NewPaperUseCase(cfg, logger)
	if err != nil {
		return err
	}

	out, err := uc.Synchronize(ctx, paper.SyncInput{DryRun: opts.dryRun})
	if err != nil {
		logger.Errorf(ctx, "Sync failed after %d write(s): %v", out.Writes(), err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created=%d updated=%d linked=%d unchanged=%d\n",
		out.Created, out.Updated, out.Linked, out.Unchanged)
	return nil
}
