package zotero

import (
	"time"

	"zotero-notion-sync/internal/paper/repository"
)

// SetClock replaces the clock of a repository built by New.
func SetClock(r repository.LibraryRepository, now func() time.Time) {
	r.(*implRepository).now = now
}
