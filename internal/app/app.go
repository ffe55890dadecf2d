// Package app wires configuration into the paper domain. Both binaries share it.
package app

import (
	"fmt"

	"zotero-notion-sync/config"
	"zotero-notion-sync/internal/paper"
	"zotero-notion-sync/internal/paper/repository/notion"
	"zotero-notion-sync/internal/paper/repository/zotero"
	"zotero-notion-sync/internal/paper/usecase"
	"zotero-notion-sync/pkg/datemath"
	"zotero-notion-sync/pkg/log"
	"zotero-notion-sync/pkg/ratelimit"
)

// NewLogger builds the process logger. A non-empty level overrides the
// configured one.
func NewLogger(cfg config.LoggerConfig, level string) log.Logger {
	if level == "" {
		level = cfg.Level
	}
	return log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Mode,
		Encoding:     cfg.Encoding,
		ColorEnabled: cfg.ColorEnabled,
		File:         cfg.File,
	})
}

// NewPaperUseCase builds both store adapters and the reconciler.
func NewPaperUseCase(cfg *config.Config, l log.Logger) (paper.UseCase, error) {
	dates, err := datemath.NewParser(cfg.Environment.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to create date parser: %w", err)
	}

	notionClient := notion.NewClient(
		cfg.Notion.BaseURL,
		cfg.Notion.APIVersion,
		cfg.Notion.Token,
		ratelimit.NewRegistry(cfg.Notion.RequestsPerSecond),
	)
	zoteroClient := zotero.NewClient(
		cfg.Zotero.BaseURL,
		cfg.Zotero.LibraryType,
		cfg.Zotero.GroupID,
		cfg.Zotero.Token,
		ratelimit.NewRegistry(cfg.Zotero.RequestsPerSecond),
	)

	board := notion.New(notionClient, cfg.Notion.DatabaseID, l)
	library := zotero.New(zoteroClient, dates, l)

	return usecase.New(l, board, library), nil
}
