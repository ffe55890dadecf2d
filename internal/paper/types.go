package paper

// SyncInput is the input for a reconciliation pass.
type SyncInput struct {
	DryRun bool // decide and log, but issue no remote writes
}

// SyncOutput summarises a reconciliation pass.
// On failure it holds the counters reached before the error.
type SyncOutput struct {
	LibraryCount int  `json:"library_count"`
	BoardCount   int  `json:"board_count"`
	Created      int  `json:"created"`
	Updated      int  `json:"updated"`
	Linked       int  `json:"linked"` // back-link notes written
	Unchanged    int  `json:"unchanged"`
	DryRun       bool `json:"dry_run"`
}

// Writes is the number of remote mutations the pass issued (or would issue).
func (o SyncOutput) Writes() int {
	return o.Created + o.Updated + o.Linked
}
