package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

func TestAggregateFirstSeenWins(t *testing.T) {
	results := []models.ExtractionResult{
		{
			Strategy: StrategyRateTable,
			Records: []models.Record{
				models.RoomRate{Date: "2026-09-01", RoomType: "Doble", Price: "$1,200"},
				models.RoomRate{Date: "2026-09-01", RoomType: "Suite", Price: "$2,400"},
			},
		},
		{
			Strategy: StrategyRateTable,
			Records: []models.Record{
				// Same natural key, later observation: must be dropped.
				models.RoomRate{Date: "2026-09-01", RoomType: "doble", Price: "$9,999"},
				models.RoomRate{Date: "2026-09-02", RoomType: "Doble", Price: "$1,150"},
			},
		},
	}

	out := Aggregate(results)
	require.Len(t, out, 3)
	require.Equal(t, "$1,200", out[0].(models.RoomRate).Price, "first occurrence must be retained")
	require.Equal(t, "2026-09-02", out[2].(models.RoomRate).Date)

	seen := make(map[string]bool)
	for _, rec := range out {
		key := rec.NaturalKey()
		require.False(t, seen[key], "duplicate natural key %q in output", key)
		seen[key] = true
	}
}

func TestAggregatePreservesBlockDayOrder(t *testing.T) {
	results := []models.ExtractionResult{
		{Records: []models.Record{models.RoomRate{Date: "2026-09-03", RoomType: "A"}}},
		{Records: []models.Record{models.RoomRate{Date: "2026-09-01", RoomType: "A"}}},
		{Records: []models.Record{models.RoomRate{Date: "2026-09-02", RoomType: "A"}}},
	}

	out := Aggregate(results)
	require.Len(t, out, 3)
	// Output follows input (block/day) order, not date order.
	require.Equal(t, "2026-09-03", out[0].(models.RoomRate).Date)
	require.Equal(t, "2026-09-01", out[1].(models.RoomRate).Date)
	require.Equal(t, "2026-09-02", out[2].(models.RoomRate).Date)
}

func TestAggregateEventLinkTiebreaker(t *testing.T) {
	a := models.Event{Name: "Feria del Libro", Venue: "Zócalo", Date: "2026-09-10", Link: "/e/feria-1"}
	b := models.Event{Name: "Feria del Libro", Venue: "Zócalo", Date: "2026-09-10", Link: "/e/feria-2"}

	out := Aggregate([]models.ExtractionResult{{Records: []models.Record{a, b, a}}})
	require.Len(t, out, 2, "distinct links keep both; repeated sighting collapses")
}
