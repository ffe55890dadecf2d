package httpserver

import (
	"zotero-notion-sync/pkg/response"

	"github.com/gin-gonic/gin"
)

// Health response constants.
const (
	HealthVersion = "1.0.0"
	ServiceName   = "zotero-notion-sync"
)

func (srv HTTPServer) healthCheck(c *gin.Context) {
	srv.status(c, "healthy")
}

// readyCheck returns ready once the routes are mapped.
func (srv HTTPServer) readyCheck(c *gin.Context) {
	srv.status(c, "ready")
}

func (srv HTTPServer) liveCheck(c *gin.Context) {
	srv.status(c, "alive")
}

func (srv HTTPServer) status(c *gin.Context, status string) {
	response.OK(c, gin.H{
		"status":      status,
		"version":     HealthVersion,
		"service":     ServiceName,
		"environment": srv.environment,
	})
}
