package paper

import "errors"

// Domain-specific errors for the paper package.
var (
	ErrSyncInProgress = errors.New("a sync pass is already running")
	ErrListBoard      = errors.New("failed to list board papers")
	ErrListLibrary    = errors.New("failed to list library papers")
)
