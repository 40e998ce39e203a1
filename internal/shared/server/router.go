package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glance-backend/internal/assist"
	"glance-backend/internal/chat"
	"glance-backend/internal/documents"
	"glance-backend/internal/search"
	"glance-backend/internal/shared/config"
	"glance-backend/internal/shared/server/middleware"
	"glance-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	ChatHandler     *chat.Handler
	AssistHandler   *assist.Handler
	SearchHandler   *search.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	// Health stays reachable without identity; everything else requires it.
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := api.Group("")
	authed.Use(middleware.Auth())
	deps.DocumentHandler.RegisterRoutes(authed)
	deps.ChatHandler.RegisterRoutes(authed)
	deps.AssistHandler.RegisterRoutes(authed)
	deps.SearchHandler.RegisterRoutes(authed)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
