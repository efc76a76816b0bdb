package prometheus

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveAnalysis(t *testing.T) {
	m := NewMetrics()

	m.ObserveAnalysis(analysis.StatusComplete, 42*time.Second)
	m.ObserveAnalysis(analysis.StatusComplete, 10*time.Second)
	m.ObserveAnalysis(analysis.StatusFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analysisTotal.WithLabelValues("complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analysisTotal.WithLabelValues("failed")))

	output := scrape(t, m)
	assert.Contains(t, output, `hbi_analysis_runs_total{status="complete"} 2`)
	assert.Contains(t, output, `hbi_analysis_run_duration_seconds_count{status="complete"} 2`)
}

func TestObserveHTTPRequest(t *testing.T) {
	m := NewMetrics()

	m.ObserveHTTPRequest("POST", "/api/v1/sessions", "201", 5*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/sessions", "201", 7*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/sessions/:id/analysis", "404", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/sessions", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/sessions/:id/analysis", "404")))
}

func TestObserveAIRequest(t *testing.T) {
	m := NewMetrics()

	m.ObserveAIRequest("classify", "success", 2*time.Second)
	m.ObserveAIRequest("classify", "error", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequestsTotal.WithLabelValues("classify", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequestsTotal.WithLabelValues("classify", "error")))
}

func TestCounters(t *testing.T) {
	m := NewMetrics()

	m.ObserveDocumentUploaded()
	m.ObserveDocumentUploaded()
	m.ObserveSessionErased()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documentsUploaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsErased))
}

func TestRuntimeCollectorsRegistered(t *testing.T) {
	m := NewMetrics()

	output := scrape(t, m)
	assert.True(t, strings.Contains(output, "go_goroutines"))
	assert.True(t, strings.Contains(output, "process_") || strings.Contains(output, "go_"))
}
