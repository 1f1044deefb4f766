package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// rateTableStrategy walks the primary pricing table row by row: one cleaned
// room-type label and the first price-like token per row, first price per
// distinct label.
func rateTableStrategy(p *RenderedPage, q Query) []models.Record {
	var parser PriceParser
	var records []models.Record
	seen := make(map[string]bool)

	p.Doc.Find(RateTableSelector).First().Find(RateRowSelector).Each(func(_ int, row *goquery.Selection) {
		label := cleanRoomLabel(row.Find(RateRoomCellSelector).First().Text())
		if label == "" {
			return
		}
		key := strings.ToLower(label)
		if seen[key] {
			return
		}

		cell := row.Find(RatePriceCellSelector).First().Text()
		if cell == "" {
			cell = row.Text()
		}
		price, ok := parser.FindFirst(cell)
		if !ok {
			return
		}

		seen[key] = true
		records = append(records, models.RoomRate{
			Date:        q.Date,
			RoomType:    label,
			Price:       price.Raw,
			CurrencyRaw: price.Currency,
		})
	})

	return records
}

// looseNodeStrategy is the fallback when the rate table is absent: scan
// price-bearing nodes site-wide and infer the nearest room label by walking
// up to a known container shape.
func looseNodeStrategy(p *RenderedPage, q Query) []models.Record {
	var parser PriceParser
	var records []models.Record
	seen := make(map[string]bool)

	p.Doc.Find(LoosePriceNodeSelector).Each(func(_ int, node *goquery.Selection) {
		price, ok := parser.FindFirst(node.Text())
		if !ok {
			return
		}

		container := node.Closest(RoomContainerSelector)
		label := cleanRoomLabel(container.Find(RoomLabelSelector).First().Text())
		if label == "" {
			return
		}
		key := strings.ToLower(label)
		if seen[key] {
			return
		}

		seen[key] = true
		records = append(records, models.RoomRate{
			Date:        q.Date,
			RoomType:    label,
			Price:       price.Raw,
			CurrencyRaw: price.Currency,
		})
	})

	return records
}
