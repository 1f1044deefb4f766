package main

import (
	"time"

	"github.com/EstebanCaso/arkus-scraper-worker/api"
	"github.com/EstebanCaso/arkus-scraper-worker/config"
	"github.com/EstebanCaso/arkus-scraper-worker/pkg/logger"
	"github.com/EstebanCaso/arkus-scraper-worker/services"
)

func main() {
	cfg := config.Default()
	log := logger.Default()

	if cfg.APIKey == "" {
		log.Warn("API_KEY not set; all /v1 requests will be rejected")
	}

	agent := config.NewUserAgentProvider(time.Now().UnixNano())
	runner := services.NewRunner(cfg, log, agent)

	server := api.NewServer(cfg, runner, log)
	if err := server.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
	}
}
