package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"zotero-notion-sync/config"
	"zotero-notion-sync/internal/app"
	"zotero-notion-sync/internal/httpserver"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "zotero-notion-sync-api",
		Short:         "Serve POST /api/v1/sync to run sync passes on demand",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "config/config.yaml", "path to config file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, configPath string) error {
	// 1. Configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Logger
	logger := app.NewLogger(cfg.Logger, "")
	logger.Info(ctx, "Starting Zotero Notion sync service...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Paper domain
	paperUC, err := app.NewPaperUseCase(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize paper use case: %w", err)
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		InternalKey:  cfg.HTTPServer.InternalKey,
		PaperUseCase: paperUC,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		return err
	}

	logger.Info(ctx, "Server stopped gracefully")
	return nil
}
