package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsession "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/application/session"
	domain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockSessionService struct {
	session   *domain.Session
	export    *appsession.Export
	report    *appsession.ErasureReport
	err       error
	erasedIDs []common.ID
}

func (m *mockSessionService) Create(context.Context) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) ExportData(_ context.Context, id common.ID) (*appsession.Export, error) {
	return m.export, m.err
}

func (m *mockSessionService) Erase(_ context.Context, id common.ID) (*appsession.ErasureReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.erasedIDs = append(m.erasedIDs, id)
	return m.report, nil
}

type countingMetrics struct {
	erased   int
	uploaded int
}

func (c *countingMetrics) ObserveSessionErased()    { c.erased++ }
func (c *countingMetrics) ObserveDocumentUploaded() { c.uploaded++ }

func sessionRouter(svc *mockSessionService, metrics *countingMetrics) *gin.Engine {
	engine := gin.New()
	var m SessionMetrics
	if metrics != nil {
		m = metrics
	}
	NewSessionHandler(svc, m).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestCreateSession(t *testing.T) {
	sess := domain.New()
	router := sessionRouter(&mockSessionService{session: sess}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, sess.ID, resp.SessionID)
	assert.NotEmpty(t, resp.CreatedAt)
}

func TestExportSession(t *testing.T) {
	sess := domain.New()
	router := sessionRouter(&mockSessionService{export: &appsession.Export{Session: sess}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sess.ID.String()+"/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "session-export.json")
	var export appsession.Export
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &export))
	assert.Equal(t, sess.ID, export.Session.ID)
}

func TestExportUnknownSession(t *testing.T) {
	svc := &mockSessionService{err: errors.NotFound("session not found")}
	router := sessionRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeNotFound.String(), resp.Code)
	assert.Equal(t, "session not found", resp.Message)
}

func TestEraseSession(t *testing.T) {
	svc := &mockSessionService{report: &appsession.ErasureReport{Files: 3, Documents: 2, AnalysisRemoved: true}}
	metrics := &countingMetrics{}
	router := sessionRouter(svc, metrics)

	id := common.NewID()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+id.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp EraseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Session data deleted", resp.Message)
	assert.Equal(t, 3, resp.Details.Files)
	assert.Equal(t, []common.ID{id}, svc.erasedIDs)
	assert.Equal(t, 1, metrics.erased)
}

func TestEraseUnknownSessionMasksNothing(t *testing.T) {
	metrics := &countingMetrics{}
	router := sessionRouter(&mockSessionService{err: errors.NotFound("session not found")}, metrics)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, metrics.erased)
}

func TestServerErrorsAreMasked(t *testing.T) {
	svc := &mockSessionService{err: errors.Wrap(assertableCause{}, errors.CodeDatabaseError, "insert session failed")}
	router := sessionRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, w.Body.String(), "insert session failed")
}

type assertableCause struct{}

func (assertableCause) Error() string { return "pq: connection refused" }
