package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType selects which extraction pipeline a job runs.
type ContentType string

const (
	ContentPrices ContentType = "prices"
	ContentEvents ContentType = "events"
)

// JobState tracks a job through its lifecycle. Failed is reachable only from
// SessionStarting (browser launch); everything after that degrades instead.
type JobState string

const (
	StateCreated         JobState = "created"
	StateSessionStarting JobState = "session_starting"
	StateScheduling      JobState = "scheduling"
	StateExtracting      JobState = "extracting"
	StateAggregating     JobState = "aggregating"
	StateEnriching       JobState = "enriching"
	StateCompleted       JobState = "completed"
	StateFailed          JobState = "failed"
)

// ScrapeJob is one bounded unit of extraction work. Immutable once created.
type ScrapeJob struct {
	ID      string      `json:"id"`
	Content ContentType `json:"content"`

	// Target is a free-text hotel name (prices) or a keyword (events).
	Target    string   `json:"target"`
	OriginLat *float64 `json:"origin_lat,omitempty"`
	OriginLon *float64 `json:"origin_lon,omitempty"`
	RadiusKm  float64  `json:"radius_km,omitempty"`

	Days        int  `json:"days"`
	DayOffset   int  `json:"day_offset"`
	Concurrency int  `json:"concurrency"`
	Headless    bool `json:"headless"`

	// Debug forces a visible browser window regardless of Headless.
	Debug bool `json:"debug"`
}

// NewScrapeJob assigns an id and fills content-type defaults.
func NewScrapeJob(content ContentType, target string) ScrapeJob {
	job := ScrapeJob{
		ID:          uuid.NewString(),
		Content:     content,
		Target:      target,
		Concurrency: 3,
		Headless:    true,
	}
	switch content {
	case ContentPrices:
		job.Days = 30
	case ContentEvents:
		job.Days = 1
	}
	return job
}

// EffectiveHeadless resolves Chrome visibility for the job: debug jobs
// always run headful.
func (j ScrapeJob) EffectiveHeadless() bool {
	return j.Headless && !j.Debug
}

// StartDate resolves the job's first query date relative to now.
func (j ScrapeJob) StartDate(now time.Time) time.Time {
	return now.AddDate(0, 0, j.DayOffset)
}

// JobResult is what a job always resolves to: a (possibly empty) record
// collection plus the terminal state. Err is set only for the fatal
// browser-launch case; the Records slice is still well formed then.
type JobResult struct {
	Job     ScrapeJob
	State   JobState
	Records []Record
	Err     error
}
