package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appsession "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/session"
	domain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// SessionService is the slice of the session application service the HTTP
// layer needs.
type SessionService interface {
	Create(ctx context.Context) (*domain.Session, error)
	ExportData(ctx context.Context, id common.ID) (*appsession.Export, error)
	Erase(ctx context.Context, id common.ID) (*appsession.ErasureReport, error)
}

// SessionMetrics counts privacy-relevant events.
type SessionMetrics interface {
	ObserveSessionErased()
}

// SessionHandler serves the session lifecycle endpoints.
type SessionHandler struct {
	sessions SessionService
	metrics  SessionMetrics
}

// NewSessionHandler wires a SessionHandler. metrics may be nil.
func NewSessionHandler(sessions SessionService, metrics SessionMetrics) *SessionHandler {
	return &SessionHandler{sessions: sessions, metrics: metrics}
}

// RegisterRoutes mounts the session endpoints on the API group.
func (h *SessionHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/sessions", h.Create)
	g.GET("/sessions/:sessionID/export", h.Export)
	g.DELETE("/sessions/:sessionID", h.Erase)
}

// CreateSessionResponse is the body of a successful session creation.
type CreateSessionResponse struct {
	SessionID common.ID `json:"session_id"`
	CreatedAt string    `json:"created_at"`
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateSessionResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
	})
}

// Export handles GET /sessions/:sessionID/export, the data-portability
// endpoint: everything the platform stores for the session in one JSON
// document.
func (h *SessionHandler) Export(c *gin.Context) {
	export, err := h.sessions.ExportData(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="session-export.json"`)
	c.JSON(http.StatusOK, export)
}

// EraseResponse confirms an erasure and itemizes what was removed.
type EraseResponse struct {
	Message string                    `json:"message"`
	Details *appsession.ErasureReport `json:"details"`
}

// Erase handles DELETE /sessions/:sessionID, the right-to-erasure endpoint.
func (h *SessionHandler) Erase(c *gin.Context) {
	report, err := h.sessions.Erase(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveSessionErased()
	}
	c.JSON(http.StatusOK, EraseResponse{
		Message: "Session data deleted",
		Details: report,
	})
}
