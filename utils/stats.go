package utils

import (
	"sort"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
	"github.com/EstebanCaso/arkus-scraper-worker/scraper"
)

type RoomCount struct {
	RoomType string
	Count    int
}

// SummaryStats summarises a price run for the end-of-run report.
type SummaryStats struct {
	TotalRates    int
	DistinctDates int
	AveragePrice  float64
	MinimumPrice  float64
	MaximumPrice  float64
	MostExpensive models.RoomRate
	RatesPerRoom  []RoomCount
}

// BuildSummaryStats computes price statistics over deduplicated rates.
// Amounts are re-parsed from the raw price tokens; unparseable rates still
// count toward totals but not toward price figures.
func BuildSummaryStats(records []models.Record) SummaryStats {
	var parser scraper.PriceParser

	stats := SummaryStats{}
	roomCounts := make(map[string]int)
	dates := make(map[string]bool)

	first := true
	var totalAmount float64
	priced := 0

	for _, rec := range records {
		rate, ok := rec.(models.RoomRate)
		if !ok {
			continue
		}
		stats.TotalRates++
		roomCounts[rate.RoomType]++
		dates[rate.Date] = true

		parsed, ok := parser.FindFirst(rate.Price)
		if !ok {
			continue
		}
		priced++
		totalAmount += parsed.Amount
		if first || parsed.Amount < stats.MinimumPrice {
			stats.MinimumPrice = parsed.Amount
		}
		if first || parsed.Amount > stats.MaximumPrice {
			stats.MaximumPrice = parsed.Amount
			stats.MostExpensive = rate
		}
		first = false
	}

	stats.DistinctDates = len(dates)
	if priced > 0 {
		stats.AveragePrice = totalAmount / float64(priced)
	}

	perRoom := make([]RoomCount, 0, len(roomCounts))
	for room, count := range roomCounts {
		perRoom = append(perRoom, RoomCount{RoomType: room, Count: count})
	}
	sort.Slice(perRoom, func(i, j int) bool {
		if perRoom[i].Count == perRoom[j].Count {
			return perRoom[i].RoomType < perRoom[j].RoomType
		}
		return perRoom[i].Count > perRoom[j].Count
	})
	stats.RatesPerRoom = perRoom

	return stats
}
