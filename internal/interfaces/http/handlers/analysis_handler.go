package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// AnalysisService triggers runs and serves their results.
type AnalysisService interface {
	Start(ctx context.Context, sessionID common.ID) (*analysis.Result, error)
	Get(ctx context.Context, sessionID common.ID) (*analysis.Result, error)
}

// AnalysisHandler serves the analysis pipeline surface.
type AnalysisHandler struct {
	analyses AnalysisService
}

// NewAnalysisHandler wires an AnalysisHandler.
func NewAnalysisHandler(analyses AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analyses: analyses}
}

// RegisterRoutes mounts the analysis endpoints on the API group.
func (h *AnalysisHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/sessions/:sessionID/analyze", h.Trigger)
	g.GET("/sessions/:sessionID/analysis/status", h.Status)
	g.GET("/sessions/:sessionID/analysis", h.Result)
	g.GET("/sessions/:sessionID/market", h.Market)
}

// TriggerResponse acknowledges a queued run.
type TriggerResponse struct {
	SessionID  common.ID       `json:"session_id"`
	AnalysisID common.ID       `json:"analysis_id"`
	Status     analysis.Status `json:"status"`
}

// Trigger handles POST /sessions/:sessionID/analyze. The run executes on a
// worker; 202 means queued, not done.
func (h *AnalysisHandler) Trigger(c *gin.Context) {
	result, err := h.analyses.Start(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, TriggerResponse{
		SessionID:  result.SessionID,
		AnalysisID: result.ID,
		Status:     result.Status,
	})
}

// StatusResponse is the progress-poll body.
type StatusResponse struct {
	SessionID       common.ID       `json:"session_id"`
	Status          analysis.Status `json:"status"`
	ProgressMessage string          `json:"progress_message"`
}

// Status handles GET /sessions/:sessionID/analysis/status.
func (h *AnalysisHandler) Status(c *gin.Context) {
	result, err := h.analyses.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	message := result.Status.ProgressMessage()
	if result.Status == analysis.StatusFailed {
		detail := result.ErrorMessage
		if detail == "" {
			detail = "Unknown error"
		}
		message = "Analysis failed: " + detail
	}

	c.JSON(http.StatusOK, StatusResponse{
		SessionID:       result.SessionID,
		Status:          result.Status,
		ProgressMessage: message,
	})
}

// Result handles GET /sessions/:sessionID/analysis, returning the complete
// result aggregate.
func (h *AnalysisHandler) Result(c *gin.Context) {
	result, err := h.analyses.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MarketResponse flattens the enrichment payload for the market panel.
type MarketResponse struct {
	Municipality     interface{} `json:"municipality"`
	AvgPurchasePrice interface{} `json:"avg_purchase_price"`
	NumTransactions  interface{} `json:"num_transactions"`
	PriceIndex       interface{} `json:"price_index"`
	Period           interface{} `json:"period"`
	BAGData          interface{} `json:"bag_data"`
	EnergyLabelData  interface{} `json:"energy_label_data"`
}

// Market handles GET /sessions/:sessionID/market. Market data only exists
// after an enriched run, so a session without it is a 404 regardless of
// whether an analysis row exists.
func (h *AnalysisHandler) Market(c *gin.Context) {
	result, err := h.analyses.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(result.MarketData) == 0 {
		respondError(c, errors.New(errors.CodeAnalysisNotFound,
			"no market data available; run analysis first"))
		return
	}

	area, _ := result.MarketData["area_statistics"].(map[string]interface{})
	c.JSON(http.StatusOK, MarketResponse{
		Municipality:     area["municipality"],
		AvgPurchasePrice: area["avg_purchase_price"],
		NumTransactions:  area["num_transactions"],
		PriceIndex:       area["price_index"],
		Period:           area["period"],
		BAGData:          result.MarketData["bag_data"],
		EnergyLabelData:  result.MarketData["energy_label_data"],
	})
}
