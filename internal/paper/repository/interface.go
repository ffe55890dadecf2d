package repository

import (
	"context"

	"zotero-notion-sync/internal/model"
)

// BoardRepository is the interface for the Board (Notion database) side.
type BoardRepository interface {
	// ListPapers returns every row of the database. Each Paper carries BoardID.
	ListPapers(ctx context.Context) ([]model.Paper, error)
	// CreatePaper adds a row for p and returns the stored row.
	CreatePaper(ctx context.Context, p model.Paper) (model.Paper, error)
	// UpdatePaper overwrites the row identified by p.BoardID and returns the stored row.
	UpdatePaper(ctx context.Context, p model.Paper) (model.Paper, error)
}

// LibraryRepository is the interface for the Library (Zotero) side.
type LibraryRepository interface {
	// ListPapers returns every top-level item, in Library order, with BoardID
	// set from its back-link note when one exists.
	ListPapers(ctx context.Context) ([]model.Paper, error)
	// WriteBackLink creates or rewrites the back-link note of p's item so it
	// points at p.BoardURL().
	WriteBackLink(ctx context.Context, p model.Paper) error
}
