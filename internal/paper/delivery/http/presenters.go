package http

import (
	"time"

	"zotero-notion-sync/internal/paper"
	"zotero-notion-sync/pkg/response"
)

// --- Request DTOs ---

type syncReq struct {
	DryRun bool `form:"dry_run"`
}

func (r syncReq) toInput() paper.SyncInput {
	return paper.SyncInput{DryRun: r.DryRun}
}

// --- Response DTOs ---

type syncResp struct {
	paper.SyncOutput
	StartedAt  response.DateTime `json:"started_at"`
	FinishedAt response.DateTime `json:"finished_at"`
}

func (h *handler) newSyncResp(out paper.SyncOutput, startedAt time.Time) syncResp {
	return syncResp{
		SyncOutput: out,
		StartedAt:  response.DateTime(startedAt),
		FinishedAt: response.DateTime(h.now()),
	}
}
