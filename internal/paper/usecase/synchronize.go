package usecase

import (
	"context"
	"fmt"

	"zotero-notion-sync/internal/model"
	"zotero-notion-sync/internal/paper"
)

// Synchronize runs one reconciliation pass. Library papers are visited in
// snapshot order; Board rows without a Library counterpart are never touched.
func (uc *implUseCase) Synchronize(ctx context.Context, input paper.SyncInput) (paper.SyncOutput, error) {
	out := paper.SyncOutput{DryRun: input.DryRun}

	boardPapers, err := uc.board.ListPapers(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "paper.usecase.Synchronize: failed to list board: %v", err)
		return out, fmt.Errorf("%w: %w", paper.ErrListBoard, err)
	}
	out.BoardCount = len(boardPapers)
	uc.l.Infof(ctx, "Found %3d Notion item(s)", len(boardPapers))

	libraryPapers, err := uc.library.ListPapers(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "paper.usecase.Synchronize: failed to list library: %v", err)
		return out, fmt.Errorf("%w: %w", paper.ErrListLibrary, err)
	}
	out.LibraryCount = len(libraryPapers)
	uc.l.Infof(ctx, "Found %3d Zotero item(s)", len(libraryPapers))

	byExternalID := indexByExternalID(boardPapers)

	for _, lib := range libraryPapers {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if err := uc.reconcile(ctx, lib, byExternalID, input.DryRun, &out); err != nil {
			return out, err
		}
	}

	uc.l.Infof(ctx, "Sync finished: %d created, %d updated, %d linked, %d unchanged (dry run: %t)",
		out.Created, out.Updated, out.Linked, out.Unchanged, input.DryRun)
	return out, nil
}

func (uc *implUseCase) reconcile(
	ctx context.Context,
	lib model.Paper,
	byExternalID map[string]model.Paper,
	dryRun bool,
	out *paper.SyncOutput,
) error {
	board, found := byExternalID[lib.ExternalID]

	if !found {
		uc.l.Infof(ctx, "Create notion page: %s...", lib.ExternalID)
		out.Created++
		if dryRun {
			out.Linked++
			return nil
		}
		created, err := uc.board.CreatePaper(ctx, lib)
		if err != nil {
			return fmt.Errorf("failed to create board row for %s: %w", lib.ExternalID, err)
		}
		return uc.writeBackLink(ctx, created, dryRun, out)
	}

	if lib.Equal(board) {
		uc.l.Infof(ctx, "Already in sync: %s", lib.ExternalID)
		out.Unchanged++
		return nil
	}

	if !lib.ContentEqual(board) {
		uc.l.Infof(ctx, "Update notion page: %s...", lib.ExternalID)
		out.Updated++
		if !dryRun {
			updated, err := uc.board.UpdatePaper(ctx, lib.WithBoardID(board.BoardID))
			if err != nil {
				return fmt.Errorf("failed to update board row for %s: %w", lib.ExternalID, err)
			}
			board = updated
		}
	}

	if lib.BoardID != board.BoardID {
		return uc.writeBackLink(ctx, board, dryRun, out)
	}
	return nil
}

func (uc *implUseCase) writeBackLink(ctx context.Context, p model.Paper, dryRun bool, out *paper.SyncOutput) error {
	uc.l.Infof(ctx, "Update zotero note: %s...", p.ExternalID)
	out.Linked++
	if dryRun {
		return nil
	}
	if err := uc.library.WriteBackLink(ctx, p); err != nil {
		return fmt.Errorf("failed to write back-link for %s: %w", p.ExternalID, err)
	}
	return nil
}

// indexByExternalID builds the per-run join map from the Board snapshot.
func indexByExternalID(papers []model.Paper) map[string]model.Paper {
	m := make(map[string]model.Paper, len(papers))
	for _, p := range papers {
		m[p.ExternalID] = p
	}
	return m
}
