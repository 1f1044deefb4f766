package scraper

import (
	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// Query carries the per-invocation parameters a strategy may consult.
type Query struct {
	Date      string // YYYY-MM-DD, price pipeline only
	OriginLat *float64
	OriginLon *float64
	RadiusKm  float64
}

// Strategy inspects a rendered page and returns zero or more candidate
// records. Strategies are pure: no browser, no I/O.
type Strategy struct {
	Name    string
	Extract func(p *RenderedPage, q Query) []models.Record
}

// Pipeline is an ordered chain of strategies for one content type. Run
// short-circuits at the first strategy producing a non-empty result and never
// merges across strategies.
type Pipeline struct {
	strategies []Strategy
}

func NewPipeline(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Run returns the first non-empty strategy result, tagged with the strategy
// name. Exhausting every strategy yields an empty, non-erroring result.
func (p *Pipeline) Run(page *RenderedPage, q Query) models.ExtractionResult {
	for _, s := range p.strategies {
		if records := s.Extract(page, q); len(records) > 0 {
			return models.ExtractionResult{Records: records, Strategy: s.Name}
		}
	}
	return models.ExtractionResult{Strategy: StrategyNone}
}

// NewPricePipeline builds the price chain: structured rate table first, then
// the loose site-wide price-node scan.
func NewPricePipeline() *Pipeline {
	return NewPipeline(
		Strategy{Name: StrategyRateTable, Extract: rateTableStrategy},
		Strategy{Name: StrategyLooseNodes, Extract: looseNodeStrategy},
	)
}

// NewEventPipeline builds the event chain: embedded structured data first,
// then the anchor scan fallback.
func NewEventPipeline() *Pipeline {
	return NewPipeline(
		Strategy{Name: StrategyStructuredData, Extract: structuredDataStrategy},
		Strategy{Name: StrategyAnchorScan, Extract: anchorScanStrategy},
	)
}

// Strategy tags, stable for diagnosability and tests. StrategyNone marks a
// day where every strategy came up empty.
const (
	StrategyRateTable      = "rate_table"
	StrategyLooseNodes     = "loose_nodes"
	StrategyStructuredData = "structured_data"
	StrategyAnchorScan     = "anchor_scan"
	StrategyNone           = "none"
)
