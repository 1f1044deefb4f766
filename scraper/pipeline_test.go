package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

func TestPipelineShortCircuits(t *testing.T) {
	page, err := NewRenderedPage("http://example.test", "<html><body></body></html>")
	require.NoError(t, err)

	first := []models.Record{models.RoomRate{Date: "2026-09-01", RoomType: "Doble", Price: "$100"}}
	secondInvoked := false

	p := NewPipeline(
		Strategy{Name: "primary", Extract: func(*RenderedPage, Query) []models.Record { return first }},
		Strategy{Name: "fallback", Extract: func(*RenderedPage, Query) []models.Record {
			secondInvoked = true
			return []models.Record{models.RoomRate{RoomType: "Other"}}
		}},
	)

	result := p.Run(page, Query{})
	require.Equal(t, "primary", result.Strategy)
	require.Equal(t, first, result.Records, "output must equal the winning strategy's output exactly")
	require.False(t, secondInvoked, "fallback must not run once primary produced records")
}

func TestPipelineFallsThroughToNext(t *testing.T) {
	page, err := NewRenderedPage("http://example.test", "<html><body></body></html>")
	require.NoError(t, err)

	p := NewPipeline(
		Strategy{Name: "primary", Extract: func(*RenderedPage, Query) []models.Record { return nil }},
		Strategy{Name: "fallback", Extract: func(*RenderedPage, Query) []models.Record {
			return []models.Record{models.Event{Name: "Concierto", Link: "/e/1"}}
		}},
	)

	result := p.Run(page, Query{})
	require.Equal(t, "fallback", result.Strategy)
	require.Len(t, result.Records, 1)
}

func TestPipelineExhaustionIsNotAnError(t *testing.T) {
	page, err := NewRenderedPage("http://example.test", "<html><body></body></html>")
	require.NoError(t, err)

	p := NewPipeline(
		Strategy{Name: "a", Extract: func(*RenderedPage, Query) []models.Record { return nil }},
		Strategy{Name: "b", Extract: func(*RenderedPage, Query) []models.Record { return nil }},
	)

	result := p.Run(page, Query{})
	require.Equal(t, "none", result.Strategy)
	require.Empty(t, result.Records)
}
