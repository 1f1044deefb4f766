package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the scraper worker.
type Config struct {
	// Site URL templates. A blank template disables the corresponding flow
	// (the job short-circuits to an empty result instead of navigating).
	SearchURLTemplate string // fmt: hotel name, url-encoded
	RatesURLTemplate  string // fmt: hotel path, checkin date, checkout date
	EventsURLTemplate string // fmt: keyword, url-encoded

	Headless  bool
	UserAgent string

	// Windowing
	BlockSizeDays int
	MaxSpanDays   int
	MaxWorkers    int
	RecoveryBound int

	// Readiness timing
	SettleTimeout time.Duration
	MarkerTimeout time.Duration
	ScrollSteps   int
	ScrollPause   time.Duration
	PageDelay     time.Duration
	NavPerSecond  float64

	// Enrichment
	EnrichLimit     int
	EnrichBatchSize int
	EnrichTimeout   time.Duration

	// Event result cache
	CacheTTL time.Duration

	// Dispatch layer
	APIKey     string
	ListenAddr string

	OutFile       string
	GlobalTimeout time.Duration

	Match MatchWeights

	// PostgreSQL (optional; blank host disables the sink)
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// MatchWeights tune the search-result scoring heuristic. The defaults are
// empirical — treat them as configuration, not invariants.
type MatchWeights struct {
	Similarity   float64 // Jaro-Winkler similarity of full strings
	TokenOverlap float64 // share of query tokens present in the candidate
	PrefixBonus  float64 // candidate starts with the query's first token
	Floor        float64 // minimum accepted score
}

// Default returns a Config populated with sensible defaults, with .env and
// environment overrides applied on top.
func Default() Config {
	_ = godotenv.Load()

	return Config{
		SearchURLTemplate: getEnv("SEARCH_URL_TEMPLATE",
			"https://www.booking.com/searchresults.es.html?ss=%s&selected_currency=MXN"),
		RatesURLTemplate: getEnv("RATES_URL_TEMPLATE",
			"%s?checkin=%s&checkout=%s&selected_currency=MXN"),
		EventsURLTemplate: getEnv("EVENTS_URL_TEMPLATE",
			"https://www.eventbrite.com.mx/d/mexico/%s/"),

		Headless:  getEnvBool("HEADLESS", true),
		UserAgent: getEnv("USER_AGENT", userAgents[0]),

		BlockSizeDays: getEnvInt("BLOCK_SIZE_DAYS", 30),
		MaxSpanDays:   getEnvInt("MAX_SPAN_DAYS", 90),
		MaxWorkers:    getEnvInt("MAX_WORKERS", 5),
		RecoveryBound: getEnvInt("RECOVERY_BOUND", 5),

		SettleTimeout: 10 * time.Second,
		MarkerTimeout: 15 * time.Second,
		ScrollSteps:   4,
		ScrollPause:   800 * time.Millisecond,
		PageDelay:     2 * time.Second,
		NavPerSecond:  0.5,

		EnrichLimit:     15,
		EnrichBatchSize: 5,
		EnrichTimeout:   12 * time.Second,

		CacheTTL: 10 * time.Minute,

		APIKey:     getEnv("API_KEY", ""),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		OutFile:       getEnv("OUT_FILE", "results.json"),
		GlobalTimeout: 20 * time.Minute,

		Match: MatchWeights{
			Similarity:   0.6,
			TokenOverlap: 0.3,
			PrefixBonus:  0.1,
			Floor:        0.55,
		},

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "scraper"),
		DBPassword: getEnv("DB_PASSWORD", "scraper"),
		DBName:     getEnv("DB_NAME", "arkus_scraper"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
