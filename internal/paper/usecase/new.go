package usecase

import (
	"zotero-notion-sync/internal/paper"
	"zotero-notion-sync/internal/paper/repository"
	pkgLog "zotero-notion-sync/pkg/log"
)

type implUseCase struct {
	l       pkgLog.Logger
	board   repository.BoardRepository
	library repository.LibraryRepository
}

// New creates a new paper UseCase instance.
func New(
	l pkgLog.Logger,
	board repository.BoardRepository,
	library repository.LibraryRepository,
) paper.UseCase {
	return &implUseCase{
		l:       l,
		board:   board,
		library: library,
	}
}
