// Package http assembles the REST API: gin engine, middleware chain, route
// registration, and the server lifecycle.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/interfaces/http/handlers"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/interfaces/http/middleware"
)

// RouterDeps bundles everything the router mounts. Metrics and
// MetricsHandler are optional; the /metrics route is only registered when a
// handler is present.
type RouterDeps struct {
	Sessions  handlers.SessionService
	Documents handlers.DocumentService
	Analyses  handlers.AnalysisService

	SessionMetrics  handlers.SessionMetrics
	DocumentMetrics handlers.DocumentMetrics
	RequestMetrics  middleware.RequestMetrics
	MetricsHandler  http.Handler

	HealthCheckers []handlers.HealthChecker

	MaxBodySize int64
	Version     string
	Mode        string // gin mode: "debug" | "release" | "test"
	Logger      logging.Logger
}

// NewRouter builds the gin engine with the full middleware chain and all
// API routes mounted under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(),
	)
	if deps.RequestMetrics != nil {
		engine.Use(middleware.Metrics(deps.RequestMetrics))
	}

	health := handlers.NewHealthHandler(deps.Version, deps.HealthCheckers...)
	health.RegisterRoutes(engine)
	if deps.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := engine.Group("/api/v1")
	handlers.NewSessionHandler(deps.Sessions, deps.SessionMetrics).RegisterRoutes(api)
	handlers.NewDocumentHandler(deps.Documents, deps.DocumentMetrics, deps.MaxBodySize).RegisterRoutes(api)
	handlers.NewAnalysisHandler(deps.Analyses).RegisterRoutes(api)

	return engine
}
