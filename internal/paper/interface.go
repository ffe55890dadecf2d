package paper

import "context"

// UseCase defines the business logic interface for the paper domain.
type UseCase interface {
	// Synchronize runs one reconciliation pass from the Library into the Board
	// and writes Board links back into the Library.
	Synchronize(ctx context.Context, input SyncInput) (SyncOutput, error)
}
