package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/scraper"
)

// runEventJob scrapes the events listing once, aggregates, then enriches
// partial records. Fresh results for the same origin/radius/keyword are
// served from the TTL cache without touching the browser.
func (r *Runner) runEventJob(ctx context.Context, manager *scraper.SessionManager, job models.ScrapeJob, result *models.JobResult, log *slog.Logger) []models.Record {
	result.State = models.StateScheduling

	if r.cfg.EventsURLTemplate == "" {
		log.Warn("events flow disabled", "error", models.ErrUpstreamUnavailable)
		return nil
	}

	cacheKey := scraper.CacheKey(job.OriginLat, job.OriginLon, job.RadiusKm, job.Target)
	if cached, ok := r.cache.Get(cacheKey); ok {
		log.Info("serving events from cache", "records", len(cached))
		result.State = models.StateCompleted
		return cached
	}

	keyword := strings.TrimSpace(job.Target)
	if keyword == "" {
		keyword = "eventos"
	}
	eventsURL := fmt.Sprintf(r.cfg.EventsURLTemplate, url.QueryEscape(keyword))

	result.State = models.StateExtracting

	session := manager.Acquire(ctx)
	defer manager.Release(session)

	navigator := scraper.NewNavigator(log)
	page, err := navigator.Navigate(ctx, session, eventsURL, r.readiness(scraper.EventsReadyMarker))
	if err != nil {
		log.Warn("events navigation failed", "error", err)
		return nil
	}
	if page.Degraded {
		log.Warn("events page degraded, extracting anyway")
	}

	extraction := scraper.NewEventPipeline().Run(page, r.query(job, ""))
	log.Info("events extracted", "strategy", extraction.Strategy, "count", len(extraction.Records))

	result.State = models.StateAggregating
	records := scraper.Aggregate([]models.ExtractionResult{extraction})

	result.State = models.StateEnriching
	records = r.enricher.Enrich(ctx, records)

	r.cache.Put(cacheKey, records)
	return records
}
