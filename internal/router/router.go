package router

import (
	"github.com/gin-gonic/gin"

	"jobclip/internal/handler"
	"jobclip/internal/middleware"
)

// Handlers bundles the HTTP handlers served by the API.
type Handlers struct {
	Posting  *handler.PostingHandler
	Tab      *handler.TabHandler
	Settings *handler.SettingsHandler
	File     *handler.FileHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(tokens middleware.TokenValidator, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger("/healthz", "/readyz"))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// Protected routes - require the extension's bearer token
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(tokens))

	// Tab tracking
	tabs := v1.Group("/tabs")
	tabs.POST("/events", h.Tab.Event)
	tabs.PUT("/:id/snapshot", h.Tab.Snapshot)

	// Posting capture
	postings := v1.Group("/postings")
	postings.POST("/parse", h.Posting.Parse)
	postings.GET("", h.Posting.List)
	postings.GET("/export", h.Posting.Export)
	postings.GET("/:id", h.Posting.GetByID)

	// Options page
	v1.GET("/settings", h.Settings.Get)
	v1.PUT("/settings", h.Settings.Update)

	// File relay
	v1.POST("/relay/messages", h.File.Relay)
	v1.GET("/panel/state", h.File.PanelState)
	v1.PUT("/panel/state", h.File.SetPanelState)
	v1.GET("/files", h.File.List)
	v1.GET("/files/:id", h.File.GetByID)

	return r
}
