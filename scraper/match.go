package scraper

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/EstebanCaso/arkus-scraper-worker/config"
)

// Candidate is one search result considered for a target-name match.
type Candidate struct {
	Name string
	URL  string
}

// Score rates how well a search-result name matches the queried target name.
// The blend and its weights are empirical; they live in config so they can be
// tuned without touching this function.
func Score(query, candidate string, w config.MatchWeights) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if query == "" || candidate == "" {
		return 0
	}

	similarity := matchr.JaroWinkler(query, candidate, false)

	queryTokens := strings.Fields(query)
	overlap := 0.0
	if len(queryTokens) > 0 {
		hits := 0
		for _, tok := range queryTokens {
			if strings.Contains(candidate, tok) {
				hits++
			}
		}
		overlap = float64(hits) / float64(len(queryTokens))
	}

	prefix := 0.0
	if len(queryTokens) > 0 && strings.HasPrefix(candidate, queryTokens[0]) {
		prefix = 1.0
	}

	return w.Similarity*similarity + w.TokenOverlap*overlap + w.PrefixBonus*prefix
}

// BestMatch picks the highest-scoring candidate at or above the configured
// floor. ok is false when nothing clears the floor.
func BestMatch(query string, candidates []Candidate, w config.MatchWeights) (Candidate, bool) {
	best := -1
	bestScore := 0.0
	for i, c := range candidates {
		s := Score(query, c.Name, w)
		if s > bestScore {
			best = i
			bestScore = s
		}
	}
	if best < 0 || bestScore < w.Floor {
		return Candidate{}, false
	}
	return candidates[best], true
}
