package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/pkg/logger"
	"github.com/EstebanCaso/arkus-scraper-worker/services"
	"github.com/EstebanCaso/arkus-scraper-worker/storage"
	"github.com/EstebanCaso/arkus-scraper-worker/utils"
)

func main() {
	cfg := config.Default()
	slogger := logger.New(logger.Config{Level: os.Getenv("LOG_LEVEL"), Format: "text"})

	content := models.ContentType(envOr("CONTENT", string(models.ContentPrices)))
	target := envOr("TARGET", "")

	job := models.NewScrapeJob(content, target)
	job.Headless = cfg.Headless
	if days, err := strconv.Atoi(os.Getenv("DAYS")); err == nil && days > 0 {
		job.Days = days
	}
	if lat, err := strconv.ParseFloat(os.Getenv("ORIGIN_LAT"), 64); err == nil {
		job.OriginLat = &lat
	}
	if lon, err := strconv.ParseFloat(os.Getenv("ORIGIN_LON"), 64); err == nil {
		job.OriginLon = &lon
	}
	if radius, err := strconv.ParseFloat(os.Getenv("RADIUS_KM"), 64); err == nil {
		job.RadiusKm = radius
	}

	log.Printf("╔═══════════════════════════════════════════════════╗")
	log.Printf("║        Arkus Scraper Worker (one-shot run)        ║")
	log.Printf("╚═══════════════════════════════════════════════════╝")
	log.Printf("Content  : %s", job.Content)
	log.Printf("Target   : %s", job.Target)
	log.Printf("Days     : %d", job.Days)
	log.Printf("Workers  : %d", job.Concurrency)
	log.Printf("Output   : %s", cfg.OutFile)

	rootCtx, cancelRoot := context.WithTimeout(context.Background(), cfg.GlobalTimeout)
	defer cancelRoot()

	agent := config.NewUserAgentProvider(time.Now().UnixNano())
	runner := services.NewRunner(cfg, slogger, agent)
	result := runner.Run(rootCtx, job)
	if result.Err != nil {
		log.Printf("✗ %v", result.Err)
	}

	total, err := utils.WriteJSON(cfg.OutFile, job.Content, result.Records)
	if err != nil {
		log.Fatalf("✗ Failed to write JSON: %v", err)
	}

	savedCount := 0
	if cfg.DBHost != "" {
		store, err := storage.NewPostgresStore(cfg)
		if err != nil {
			log.Fatalf("✗ Failed to connect to PostgreSQL: %v", err)
		}
		defer store.Close()

		dbCtx, cancelDB := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelDB()
		savedCount, err = store.SaveRecords(dbCtx, job.Target, result.Records)
		if err != nil {
			log.Fatalf("✗ Failed to store records in PostgreSQL: %v", err)
		}
	}

	log.Printf("═══════════════════════════════════════════════════")
	log.Printf("  DONE — %d entries → %s (state: %s)", total, cfg.OutFile, result.State)
	if cfg.DBHost != "" {
		log.Printf("  DB   — %d records upserted", savedCount)
	}

	if job.Content == models.ContentPrices {
		stats := utils.BuildSummaryStats(result.Records)
		log.Printf("  STATS")
		log.Printf("    Total Rates    : %d", stats.TotalRates)
		log.Printf("    Distinct Dates : %d", stats.DistinctDates)
		log.Printf("    Average Price  : %.2f", stats.AveragePrice)
		log.Printf("    Minimum Price  : %.2f", stats.MinimumPrice)
		log.Printf("    Maximum Price  : %.2f", stats.MaximumPrice)
		if stats.TotalRates > 0 {
			log.Printf("    Most Expensive : %s | %s",
				stats.MostExpensive.RoomType,
				stats.MostExpensive.Price,
			)
		}
		log.Printf("    Rates per Room Type")
		for _, roomStat := range stats.RatesPerRoom {
			log.Printf("      - %s: %d", roomStat.RoomType, roomStat.Count)
		}
	}
	log.Printf("═══════════════════════════════════════════════════")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
