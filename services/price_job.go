package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/scraper"
)

const dateLayout = "2006-01-02"

// runPriceJob resolves the target hotel, then walks the date window: a
// partitioned concurrent schedule for multi-day windows, or the single-target
// recovery policy for one-day lookups. Failures on individual days never
// abort the block or the job.
func (r *Runner) runPriceJob(ctx context.Context, manager *scraper.SessionManager, job models.ScrapeJob, result *models.JobResult, log *slog.Logger) []models.Record {
	result.State = models.StateScheduling

	hotelURL, err := r.resolveTarget(ctx, manager, job, log)
	if err != nil {
		// Missing templates or an unmatched target short-circuit to an empty
		// result without any rate navigation.
		log.Warn("target unresolved", "error", err)
		return nil
	}

	pipeline := scraper.NewPricePipeline()
	navigator := scraper.NewNavigator(log)
	start := job.StartDate(time.Now())

	fetchDay := func(s *scraper.Session) scraper.DayFetch {
		return func(ctx context.Context, date time.Time) (models.ExtractionResult, error) {
			return r.extractRatesDay(ctx, navigator, s, pipeline, job, hotelURL, date)
		}
	}

	result.State = models.StateExtracting

	if job.Days <= 1 {
		session := manager.Acquire(ctx)
		defer manager.Release(session)

		dayResult, usedDate := scraper.RecoverForward(ctx, start, r.cfg.RecoveryBound, r.cfg.PageDelay, fetchDay(session))
		if len(dayResult.Records) > 0 && !usedDate.Equal(start) {
			log.Info("recovered on shifted date", "date", usedDate.Format(dateLayout), "strategy", dayResult.Strategy)
		}
		result.State = models.StateAggregating
		return scraper.Aggregate([]models.ExtractionResult{dayResult})
	}

	blocks := scraper.Partition(job.Days, r.cfg.BlockSizeDays, r.cfg.MaxSpanDays)
	workers := job.Concurrency
	if workers > r.cfg.MaxWorkers {
		workers = r.cfg.MaxWorkers
	}

	blockResults := scraper.RunBlocks(ctx, blocks, workers, func(ctx context.Context, block scraper.Block) scraper.BlockResult {
		return r.processBlock(ctx, manager, navigator, pipeline, job, hotelURL, start, block, log)
	})

	result.State = models.StateAggregating
	return scraper.Aggregate(scraper.FlattenBlocks(blockResults))
}

// processBlock owns one page session for the block's whole lifetime and
// visits its days strictly sequentially.
func (r *Runner) processBlock(ctx context.Context, manager *scraper.SessionManager, navigator *scraper.Navigator, pipeline *scraper.Pipeline, job models.ScrapeJob, hotelURL string, start time.Time, block scraper.Block, log *slog.Logger) scraper.BlockResult {
	session := manager.Acquire(ctx)
	defer manager.Release(session)

	blockLog := log.With("block", block.Index, "days", block.Days())
	blockLog.Info("block started")

	days := make([]models.ExtractionResult, 0, block.Days())
	for offset := block.Start; offset <= block.End; offset++ {
		if offset > block.Start {
			scraper.Pause(ctx, r.cfg.PageDelay)
		}
		if ctx.Err() != nil {
			break
		}
		date := start.AddDate(0, 0, offset)

		dayResult, err := r.extractRatesDay(ctx, navigator, session, pipeline, job, hotelURL, date)
		if err != nil {
			blockLog.Warn("day failed", "date", date.Format(dateLayout), "error", err)
			dayResult = models.ExtractionResult{Strategy: scraper.StrategyNone}
		}
		days = append(days, dayResult)
	}

	blockLog.Info("block finished", "processed", len(days))
	return scraper.BlockResult{Block: block, Days: days}
}

// extractRatesDay navigates to the date-parameterised rates URL and runs the
// price pipeline once.
func (r *Runner) extractRatesDay(ctx context.Context, navigator *scraper.Navigator, session *scraper.Session, pipeline *scraper.Pipeline, job models.ScrapeJob, hotelURL string, date time.Time) (models.ExtractionResult, error) {
	checkin := date.Format(dateLayout)
	checkout := date.AddDate(0, 0, 1).Format(dateLayout)
	url := fmt.Sprintf(r.cfg.RatesURLTemplate, hotelURL, checkin, checkout)

	page, err := navigator.Navigate(ctx, session, url, r.readiness(scraper.RatesReadyMarker))
	if err != nil {
		return models.ExtractionResult{}, err
	}
	return pipeline.Run(page, r.query(job, checkin)), nil
}
