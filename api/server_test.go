package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
	"github.com/EstebanCaso/arkus-scraper-worker/pkg/logger"
	"github.com/EstebanCaso/arkus-scraper-worker/services"
)

func testServer() *Server {
	cfg := config.Default()
	cfg.APIKey = "secreto"
	log := logger.Default()
	agent := config.NewUserAgentProvider(1)
	return NewServer(cfg, services.NewRunner(cfg, log, agent), log)
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAPIKeyRequired(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/events", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/jobs/events", nil)
	req.Header.Set("X-API-Key", "equivocada")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBadRequestBody(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/prices", nil)
	req.Header.Set("X-API-Key", "secreto")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
