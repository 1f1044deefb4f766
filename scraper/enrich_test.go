package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/pkg/logger"
)

const detailPageFixture = `
<html><head>
<script type="application/ld+json">
{"@type": "Event", "name": "Noche de Jazz", "startDate": "2026-09-12T20:00",
 "location": {"name": "Foro Reforma"}}
</script>
</head><body></body></html>`

func TestEnrichFillsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(detailPageFixture))
	}))
	defer srv.Close()

	e := NewEnricher(15, 5, 5*time.Second, "test-agent", logger.Default())

	records := []models.Record{
		models.Event{Name: "Noche de Jazz", Link: srv.URL + "/e/jazz"},
		models.Event{Name: "Completo", Date: "2026-10-01", Venue: "Teatro", Link: srv.URL + "/e/otro"},
	}

	out := e.Enrich(context.Background(), records)
	require.Len(t, out, 2)

	enriched := out[0].(models.Event)
	require.Equal(t, "2026-09-12T20:00", enriched.Date)
	require.Equal(t, "Foro Reforma", enriched.Venue)
	require.Nil(t, enriched.DistanceKm, "enrichment never invents distance data")

	untouched := out[1].(models.Event)
	require.Equal(t, "2026-10-01", untouched.Date, "complete records are not fetched")
}

func TestEnrichToleratesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewEnricher(15, 5, 5*time.Second, "test-agent", logger.Default())

	original := models.Event{Name: "Parcial", Link: srv.URL + "/e/parcial"}
	out := e.Enrich(context.Background(), []models.Record{original})

	require.Len(t, out, 1)
	require.Equal(t, original, out[0].(models.Event), "failed enrichment leaves the record untouched")
}

func TestEnrichHonorsLimit(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_, _ = w.Write([]byte(detailPageFixture))
	}))
	defer srv.Close()

	e := NewEnricher(3, 2, 5*time.Second, "test-agent", logger.Default())

	var records []models.Record
	for i := 0; i < 10; i++ {
		records = append(records, models.Event{Name: "Evento", Link: srv.URL + "/e/x"})
	}

	e.Enrich(context.Background(), records)
	require.Equal(t, int32(3), atomic.LoadInt32(&fetches), "only the first limit records are enriched")
}
