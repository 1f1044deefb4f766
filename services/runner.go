package services

import (
	"context"
	"log/slog"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/pkg/logger"
	"github.com/EstebanCaso/arkus-scraper-worker/scraper"
)

// Runner orchestrates one job end to end through the job state machine. A
// job always resolves to a (possibly empty) record collection; only a failed
// browser launch carries an error alongside it.
type Runner struct {
	cfg      config.Config
	log      *slog.Logger
	cache    *scraper.CacheStore
	agent    config.UserAgentProvider
	enricher *scraper.Enricher
}

func NewRunner(cfg config.Config, log *slog.Logger, agent config.UserAgentProvider) *Runner {
	return &Runner{
		cfg:   cfg,
		log:   logger.WithComponent(log, "runner"),
		cache: scraper.NewCacheStore(cfg.CacheTTL, nil),
		agent: agent,
		enricher: scraper.NewEnricher(
			cfg.EnrichLimit, cfg.EnrichBatchSize, cfg.EnrichTimeout, cfg.UserAgent,
			logger.WithComponent(log, "enricher")),
	}
}

// Run executes a job. The returned result is terminal: StateCompleted with
// zero or more records, or StateFailed when Chrome could not start.
func (r *Runner) Run(ctx context.Context, job models.ScrapeJob) models.JobResult {
	log := r.log.With("job_id", job.ID, "content", string(job.Content), "target", job.Target)
	result := models.JobResult{Job: job, State: models.StateCreated, Records: []models.Record{}}

	result.State = models.StateSessionStarting
	log.Info("starting browser session")

	manager, err := scraper.NewSessionManager(ctx, r.cfg, scraper.SessionConfig{
		Headless:  job.EffectiveHeadless(),
		UserAgent: r.agent(),
	}, log)
	if err != nil {
		log.Error("browser launch failed", "error", err)
		result.State = models.StateFailed
		result.Err = err
		return result
	}
	defer manager.Close()

	var records []models.Record
	switch job.Content {
	case models.ContentEvents:
		records = r.runEventJob(ctx, manager, job, &result, log)
	default:
		records = r.runPriceJob(ctx, manager, job, &result, log)
	}

	if records == nil {
		records = []models.Record{}
	}
	result.Records = records
	result.State = models.StateCompleted
	log.Info("job completed", "records", len(records))
	return result
}

func (r *Runner) readiness(markers string) scraper.Readiness {
	return scraper.Readiness{
		ConsentSelectors: scraper.ConsentSelectors,
		ContentMarkers:   []string{markers},
		SettleTimeout:    r.cfg.SettleTimeout,
		MarkerTimeout:    r.cfg.MarkerTimeout,
		ScrollSteps:      r.cfg.ScrollSteps,
		ScrollPause:      r.cfg.ScrollPause,
	}
}

func (r *Runner) query(job models.ScrapeJob, date string) scraper.Query {
	return scraper.Query{
		Date:      date,
		OriginLat: job.OriginLat,
		OriginLon: job.OriginLon,
		RadiusKm:  job.RadiusKm,
	}
}
