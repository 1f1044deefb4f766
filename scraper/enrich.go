package scraper

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// Enricher fills gaps in partial event records by fetching their detail
// pages over plain HTTP. Each attempt is independent: a failure leaves the
// original record untouched and is never retried.
type Enricher struct {
	client    *resty.Client
	log       *slog.Logger
	limit     int // records considered per job
	batchSize int // parallel fetches per batch
}

func NewEnricher(limit, batchSize int, timeout time.Duration, userAgent string, log *slog.Logger) *Enricher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	return &Enricher{
		client:    client,
		log:       log,
		limit:     limit,
		batchSize: batchSize,
	}
}

// Enrich selects up to the first limit events missing date, venue or link and
// fetches their detail pages in sequential batches, parallel within a batch.
// Distance data is never invented here.
func (e *Enricher) Enrich(ctx context.Context, records []models.Record) []models.Record {
	var targets []int
	for i, rec := range records {
		ev, ok := rec.(models.Event)
		if !ok {
			continue
		}
		if ev.Link != "" && (ev.Date == "" || ev.Venue == "") {
			targets = append(targets, i)
			if len(targets) == e.limit {
				break
			}
		}
	}

	for start := 0; start < len(targets); start += e.batchSize {
		end := start + e.batchSize
		if end > len(targets) {
			end = len(targets)
		}

		var wg sync.WaitGroup
		for _, idx := range targets[start:end] {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				ev := records[idx].(models.Event)
				if enriched, ok := e.fetchDetail(ctx, ev); ok {
					records[idx] = enriched
				}
			}(idx)
		}
		wg.Wait()

		if ctx.Err() != nil {
			break
		}
	}

	return records
}

// fetchDetail fills only the missing fields from the event's detail page.
func (e *Enricher) fetchDetail(ctx context.Context, ev models.Event) (models.Event, bool) {
	resp, err := e.client.R().SetContext(ctx).Get(ev.Link)
	if err != nil || !resp.IsSuccess() {
		e.log.Debug("enrichment fetch failed", "link", ev.Link, "error", err)
		return ev, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		return ev, false
	}

	changed := false
	if ev.Date == "" {
		if date := detailDate(doc); date != "" {
			ev.Date = date
			changed = true
		}
	}
	if ev.Venue == "" {
		if venue := detailVenue(doc); venue != "" {
			ev.Venue = venue
			changed = true
		}
	}
	return ev, changed
}

func detailDate(doc *goquery.Document) string {
	// Structured data on the detail page is the most stable source.
	for _, item := range detailLDEvents(doc) {
		if d := strings.TrimSpace(item.StartDate); d != "" {
			return d
		}
	}
	if dt := doc.Find(EventDateSelector).First().AttrOr("datetime", ""); dt != "" {
		return strings.TrimSpace(dt)
	}
	return firstLine(doc.Find(EventDateSelector).First().Text())
}

func detailVenue(doc *goquery.Document) string {
	for _, item := range detailLDEvents(doc) {
		if v := strings.TrimSpace(item.Location.Name); v != "" {
			return v
		}
	}
	return firstLine(doc.Find(EventVenueSelector).First().Text())
}

func detailLDEvents(doc *goquery.Document) []ldEvent {
	var out []ldEvent
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		out = append(out, decodeLDEvents(strings.TrimSpace(s.Text()))...)
	})
	return out
}
