package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports the health of one infrastructure dependency.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version  string
	startAt  time.Time
	checkers []HealthChecker
}

// NewHealthHandler wires a HealthHandler over the given dependency checkers.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		version:  version,
		startAt:  time.Now(),
		checkers: checkers,
	}
}

// RegisterRoutes mounts the probes at the engine root, outside the
// versioned API group.
func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/healthz", h.Liveness)
	e.GET("/readyz", h.Readiness)
}

// ComponentCheck is one dependency's status in a readiness report.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz. It checks nothing beyond the process
// itself.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"version": h.version,
		"uptime":  time.Since(h.startAt).Truncate(time.Second).String(),
	})
}

// Readiness handles GET /readyz. Any failing dependency turns the whole
// report into a 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]ComponentCheck, len(h.checkers))
	for _, checker := range h.checkers {
		start := time.Now()
		err := checker.Check(ctx)
		check := ComponentCheck{Status: "ok", Latency: time.Since(start).String()}
		if err != nil {
			check = ComponentCheck{Status: "down", Error: err.Error()}
			status = http.StatusServiceUnavailable
		}
		components[checker.Name()] = check
	}

	overall := "ready"
	if status != http.StatusOK {
		overall = "not ready"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}
