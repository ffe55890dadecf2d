package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"zotero-notion-sync/internal/middleware"
	"zotero-notion-sync/internal/model"
	paperHTTP "zotero-notion-sync/internal/paper/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	if srv.mode == gin.DebugMode {
		srv.gin.Use(gin.Logger())
	}

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	mw := middleware.New(srv.l, srv.internalKey)
	if srv.internalKey == "" {
		srv.l.Warnf(ctx, "No internal key configured, /api/v1 is unauthenticated")
	}

	h := paperHTTP.New(srv.l, srv.paperUC)
	paperHTTP.RegisterRoutes(api, h, mw)
	srv.l.Infof(ctx, "Sync route registered at POST /api/v1/sync")

	return nil
}
