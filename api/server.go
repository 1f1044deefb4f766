// Package api is the request-dispatch layer: it accepts inbound jobs over
// HTTP, enforces the API key, runs one core invocation per job and always
// answers with a well-formed JSON array. Absence of data and transient
// scraping failures are indistinguishable to callers by design.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/services"
	"github.com/EstebanCaso/arkus-scraper-worker/utils"
)

// JobRequest is the inbound job descriptor.
type JobRequest struct {
	Target      string   `json:"target"`
	OriginLat   *float64 `json:"origin_lat,omitempty"`
	OriginLon   *float64 `json:"origin_lon,omitempty"`
	RadiusKm    float64  `json:"radius_km,omitempty"`
	Days        int      `json:"days,omitempty"`
	DayOffset   int      `json:"day_offset,omitempty"`
	Concurrency int      `json:"concurrency,omitempty"`
	Headless    *bool    `json:"headless,omitempty"`
	Debug       bool     `json:"debug,omitempty"`
}

// Server wires the router, the runner and the middleware together.
type Server struct {
	cfg    config.Config
	runner *services.Runner
	log    *slog.Logger
	router *mux.Router
}

func NewServer(cfg config.Config, runner *services.Runner, log *slog.Logger) *Server {
	s := &Server{cfg: cfg, runner: runner, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(s.apiKeyMiddleware)
	v1.HandleFunc("/jobs/prices", s.handleJob(models.ContentPrices)).Methods(http.MethodPost)
	v1.HandleFunc("/jobs/events", s.handleJob(models.ContentEvents)).Methods(http.MethodPost)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe() error {
	s.log.Info("dispatch layer listening", "addr", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, s.router)
}

func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIKey == "" || r.Header.Get("X-API-Key") != s.cfg.APIKey {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleJob runs one job synchronously. The response is always 200 with a
// JSON array; a failed launch or an empty scrape both come back as [].
func (s *Server) handleJob(content models.ContentType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
			return
		}

		job := models.NewScrapeJob(content, req.Target)
		job.OriginLat = req.OriginLat
		job.OriginLon = req.OriginLon
		job.RadiusKm = req.RadiusKm
		if req.Days > 0 {
			job.Days = req.Days
		}
		job.DayOffset = req.DayOffset
		if req.Concurrency > 0 {
			job.Concurrency = req.Concurrency
		}
		if req.Headless != nil {
			job.Headless = *req.Headless
		}
		job.Debug = req.Debug

		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.GlobalTimeout)
		defer cancel()

		result := s.runner.Run(ctx, job)
		if result.Err != nil {
			s.log.Error("job failed", "job_id", job.ID, "error", result.Err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(utils.Payload(content, result.Records))
	}
}
