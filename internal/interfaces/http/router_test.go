package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	domain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/interfaces/http/middleware"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

type stubSessions struct{}

func (stubSessions) Create(context.Context) (*domain.Session, error) { return domain.New(), nil }
func (stubSessions) ExportData(context.Context, common.ID) (*appsession.Export, error) {
	return nil, errors.NotFound("session not found")
}
func (stubSessions) Erase(context.Context, common.ID) (*appsession.ErasureReport, error) {
	return nil, errors.NotFound("session not found")
}

type stubDocuments struct{}

func (stubDocuments) Upload(context.Context, common.ID, string, string, []byte) (*document.Document, error) {
	return nil, errors.NotFound("session not found")
}
func (stubDocuments) List(context.Context, common.ID) ([]*document.Document, error) {
	return nil, errors.NotFound("session not found")
}
func (stubDocuments) Content(context.Context, common.ID, common.ID) ([]byte, string, error) {
	return nil, "", errors.NotFound("session not found")
}
func (stubDocuments) Delete(context.Context, common.ID, common.ID) error {
	return errors.NotFound("session not found")
}

type stubAnalyses struct{}

func (stubAnalyses) Start(context.Context, common.ID) (*analysis.Result, error) {
	return nil, errors.NotFound("session not found")
}
func (stubAnalyses) Get(context.Context, common.ID) (*analysis.Result, error) {
	return nil, errors.New(errors.CodeAnalysisNotFound, "no analysis for session")
}

func testRouter() *gin.Engine {
	return NewRouter(RouterDeps{
		Sessions:       stubSessions{},
		Documents:      stubDocuments{},
		Analyses:       stubAnalyses{},
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		Version: "test",
		Mode:    gin.TestMode,
		Logger:  logging.NewNopLogger(),
	})
}

func TestRouterMountsAllRoutes(t *testing.T) {
	router := testRouter()

	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/sessions",
		"DELETE /api/v1/sessions/:sessionID",
		"GET /api/v1/sessions/:sessionID/export",
		"POST /api/v1/sessions/:sessionID/documents",
		"GET /api/v1/sessions/:sessionID/documents",
		"GET /api/v1/sessions/:sessionID/documents/:documentID",
		"DELETE /api/v1/sessions/:sessionID/documents/:documentID",
		"POST /api/v1/sessions/:sessionID/analyze",
		"GET /api/v1/sessions/:sessionID/analysis/status",
		"GET /api/v1/sessions/:sessionID/analysis",
		"GET /api/v1/sessions/:sessionID/market",
		"GET /healthz",
		"GET /readyz",
		"GET /metrics",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestRouterAppliesRequestID(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouterErrorBodiesCarryCodes(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope/analysis", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), errors.CodeAnalysisNotFound.String())
}
