package http

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"zotero-notion-sync/internal/paper"
	"zotero-notion-sync/pkg/log"
)

// Handler is the public interface for the paper HTTP delivery layer.
type Handler interface {
	Sync(c *gin.Context)
}

type handler struct {
	l   log.Logger
	uc  paper.UseCase
	now func() time.Time

	// one pass at a time per process
	running sync.Mutex
}

// New creates a new HTTP handler for the paper domain.
func New(l log.Logger, uc paper.UseCase) *handler {
	return &handler{
		l:   l,
		uc:  uc,
		now: time.Now,
	}
}
