package scraper

import (
	"context"
	"time"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// DayFetch navigates and extracts one date's result. Implementations own
// their error handling for degraded pages; an error here simply counts as an
// empty day.
type DayFetch func(ctx context.Context, date time.Time) (models.ExtractionResult, error)

// RecoverForward implements the single-target recovery policy: when the
// initial date yields nothing, shift the query date forward one day at a
// time, up to bound extra attempts, and accept the first non-empty day. The
// accepted result keeps the tag of the strategy that produced it. At most
// 1+bound distinct dates are visited, with delay between consecutive visits,
// and no error is ever returned.
func RecoverForward(ctx context.Context, start time.Time, bound int, delay time.Duration, fetch DayFetch) (models.ExtractionResult, time.Time) {
	date := start
	for attempt := 0; attempt <= bound; attempt++ {
		if attempt > 0 {
			Pause(ctx, delay)
		}
		if ctx.Err() != nil {
			return models.ExtractionResult{Strategy: StrategyNone}, date
		}
		result, err := fetch(ctx, date)
		if err == nil && len(result.Records) > 0 {
			return result, date
		}
		date = date.AddDate(0, 0, 1)
	}
	return models.ExtractionResult{Strategy: StrategyNone}, start
}

// Pause blocks for d or until ctx is cancelled, whichever comes first.
func Pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
