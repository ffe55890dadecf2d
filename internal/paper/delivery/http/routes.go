package http

import (
	"github.com/gin-gonic/gin"

	"zotero-notion-sync/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.POST("/sync", mw.Auth(), h.Sync)
}
