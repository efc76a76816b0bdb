package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
)

func testServer() *Server {
	return NewServer(config.ServerConfig{
		Port:         8080,
		Mode:         gin.TestMode,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}, RouterDeps{
		Sessions:  stubSessions{},
		Documents: stubDocuments{},
		Analyses:  stubAnalyses{},
		Version:   "test",
		Logger:    logging.NewNopLogger(),
	})
}

func TestServerHandlerServesRoutes(t *testing.T) {
	srv := testServer()

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alive"`)
}

func TestServerStopBeforeStart(t *testing.T) {
	srv := testServer()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Stop(ctx))
}
