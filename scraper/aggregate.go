package scraper

import (
	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// Aggregate concatenates per-unit results in block/day order and drops any
// record whose natural key was already emitted, keeping the earliest
// occurrence. Inputs arrive already re-ordered by the scheduler's join
// barrier, so the output is deterministic even though blocks run
// concurrently.
func Aggregate(results []models.ExtractionResult) []models.Record {
	var out []models.Record
	seen := make(map[string]bool)

	for _, result := range results {
		for _, rec := range result.Records {
			key := rec.NaturalKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, rec)
		}
	}
	return out
}

// FlattenBlocks unrolls block results into day order for aggregation.
func FlattenBlocks(blocks []BlockResult) []models.ExtractionResult {
	var out []models.ExtractionResult
	for _, b := range blocks {
		out = append(out, b.Days...)
	}
	return out
}
