package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
)

func testWeights() config.MatchWeights {
	return config.MatchWeights{Similarity: 0.6, TokenOverlap: 0.3, PrefixBonus: 0.1, Floor: 0.55}
}

func TestScoreExactMatch(t *testing.T) {
	w := testWeights()
	score := Score("Hotel Lucerna Tijuana", "hotel lucerna tijuana", w)
	require.InDelta(t, 1.0, score, 0.001)
}

func TestScoreOrdering(t *testing.T) {
	w := testWeights()
	query := "Hotel Lucerna Tijuana"

	close := Score(query, "Hotel Lucerna Tijuana Centro", w)
	far := Score(query, "Motel Económico Las Palmas", w)
	require.Greater(t, close, far)
}

func TestScoreEmptyInputs(t *testing.T) {
	w := testWeights()
	require.Zero(t, Score("", "algo", w))
	require.Zero(t, Score("algo", "", w))
}

func TestBestMatchPicksHighestAboveFloor(t *testing.T) {
	w := testWeights()
	candidates := []Candidate{
		{Name: "Hostal del Centro", URL: "/hotel/hostal"},
		{Name: "Hotel Lucerna Tijuana", URL: "/hotel/lucerna"},
		{Name: "Lucerna Suites Mexicali", URL: "/hotel/lucerna-mxl"},
	}

	best, ok := BestMatch("hotel lucerna tijuana", candidates, w)
	require.True(t, ok)
	require.Equal(t, "/hotel/lucerna", best.URL)
}

func TestBestMatchFloor(t *testing.T) {
	w := testWeights()
	candidates := []Candidate{
		{Name: "Taquería El Güero", URL: "/x"},
		{Name: "Farmacia 24h", URL: "/y"},
	}

	_, ok := BestMatch("hotel lucerna tijuana", candidates, w)
	require.False(t, ok, "nothing remotely similar must clear the floor")
}
