package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RenderedPage is a fully loaded page snapshot. Extraction strategies work on
// the parsed document only, so they can be exercised against fixed HTML
// fixtures without a browser.
type RenderedPage struct {
	URL      string
	Degraded bool
	Doc      *goquery.Document
}

// NewRenderedPage parses captured page HTML.
func NewRenderedPage(url, html string) (*RenderedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &RenderedPage{URL: url, Doc: doc}, nil
}
