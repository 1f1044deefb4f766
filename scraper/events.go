package scraper

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// ldEvent mirrors the subset of a schema.org Event object the pipeline needs.
// Numeric fields arrive as numbers or strings depending on the site.
type ldEvent struct {
	Type      any        `json:"@type"`
	Name      string     `json:"name"`
	StartDate string     `json:"startDate"`
	URL       string     `json:"url"`
	Location  ldLocation `json:"location"`
	Graph     []ldEvent  `json:"@graph"`
}

type ldLocation struct {
	Name string `json:"name"`
	Geo  ldGeo  `json:"geo"`
}

type ldGeo struct {
	Latitude  any `json:"latitude"`
	Longitude any `json:"longitude"`
}

// structuredDataStrategy parses application/ld+json blocks for Event objects,
// accepting single objects, arrays and @graph containers, and applies the
// radius filter to geo-tagged items.
func structuredDataStrategy(p *RenderedPage, q Query) []models.Record {
	var records []models.Record

	p.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		payload := strings.TrimSpace(s.Text())
		if payload == "" {
			return
		}
		for _, item := range decodeLDEvents(payload) {
			ev, ok := eventFromLD(item, q)
			if !ok {
				continue
			}
			records = append(records, ev)
		}
	})

	return records
}

// decodeLDEvents tolerates the three container shapes seen in the wild.
func decodeLDEvents(payload string) []ldEvent {
	var single ldEvent
	if err := json.Unmarshal([]byte(payload), &single); err == nil {
		if len(single.Graph) > 0 {
			return single.Graph
		}
		return []ldEvent{single}
	}
	var list []ldEvent
	if err := json.Unmarshal([]byte(payload), &list); err == nil {
		return list
	}
	return nil
}

func eventFromLD(item ldEvent, q Query) (models.Event, bool) {
	if !isEventType(item.Type) {
		return models.Event{}, false
	}
	name := strings.TrimSpace(item.Name)
	if name == "" {
		return models.Event{}, false
	}

	lat := numberOrNil(item.Location.Geo.Latitude)
	lon := numberOrNil(item.Location.Geo.Longitude)
	include, dist := distanceFilter(q, lat, lon)
	if !include {
		return models.Event{}, false
	}

	return models.Event{
		Name:       name,
		Date:       strings.TrimSpace(item.StartDate),
		Venue:      strings.TrimSpace(item.Location.Name),
		Link:       strings.TrimSpace(item.URL),
		Latitude:   lat,
		Longitude:  lon,
		DistanceKm: dist,
	}, true
}

// isEventType accepts "Event", subtypes like "MusicEvent" and type arrays.
func isEventType(t any) bool {
	switch v := t.(type) {
	case string:
		return strings.Contains(v, "Event")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.Contains(s, "Event") {
				return true
			}
		}
	}
	return false
}

func numberOrNil(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return &parsed
		}
	}
	return nil
}

var eventHrefRe = regexp.MustCompile(`/(e|events?)/`)

// anchorScanStrategy is the fallback when no structured data is embedded:
// anchors matching the event-link pattern, with date, venue and geo derived
// from nearby siblings and per-item data attributes.
func anchorScanStrategy(p *RenderedPage, q Query) []models.Record {
	var records []models.Record
	seen := make(map[string]bool)

	p.Doc.Find(EventAnchorSelector).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || !eventHrefRe.MatchString(href) || seen[href] {
			return
		}

		name := strings.TrimSpace(a.AttrOr("aria-label", ""))
		if name == "" {
			name = firstLine(a.Text())
		}
		if name == "" {
			return
		}

		card := a.Closest(`article, li, [data-event-id], .event-card, div`)
		date := strings.TrimSpace(card.Find(EventDateSelector).First().AttrOr("datetime", ""))
		if date == "" {
			date = firstLine(card.Find(EventDateSelector).First().Text())
		}
		venue := firstLine(card.Find(EventVenueSelector).First().Text())

		lat := attrFloat(card, "data-latitude")
		lon := attrFloat(card, "data-longitude")
		include, dist := distanceFilter(q, lat, lon)
		if !include {
			return
		}

		seen[href] = true
		records = append(records, models.Event{
			Name:       name,
			Date:       date,
			Venue:      venue,
			Link:       href,
			Latitude:   lat,
			Longitude:  lon,
			DistanceKm: dist,
		})
	})

	return records
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func attrFloat(s *goquery.Selection, attr string) *float64 {
	v, ok := s.Attr(attr)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &parsed
}
