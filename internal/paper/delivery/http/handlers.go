package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"zotero-notion-sync/internal/paper"
	"zotero-notion-sync/pkg/response"
)

// Sync runs one reconciliation pass and reports its counters.
// Only one pass runs at a time; a concurrent request gets 409.
func (h *handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSyncReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.running.TryLock() {
		h.l.Warnf(ctx, "paper.http.Sync: %v", paper.ErrSyncInProgress)
		response.Conflict(c, paper.ErrSyncInProgress)
		return
	}
	defer h.running.Unlock()

	// a client hanging up must not abort a pass halfway through its writes
	startedAt := h.now()
	output, err := h.uc.Synchronize(context.WithoutCancel(ctx), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "paper.http.Sync: uc.Synchronize: %v", err)
		response.InternalError(c, err, h.newSyncResp(output, startedAt))
		return
	}

	response.OK(c, h.newSyncResp(output, startedAt))
}
