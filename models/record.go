package models

import (
	"strings"
)

// Record is one typed unit of extracted data — a room rate or an event.
// NaturalKey is the field combination the aggregator dedupes on; it is also
// what makes the downstream upsert safe to retry.
type Record interface {
	NaturalKey() string
}

// RoomRate is a price observation for one room type on one date.
type RoomRate struct {
	Date        string `json:"date"`
	RoomType    string `json:"room_type"`
	Price       string `json:"price"`
	CurrencyRaw string `json:"currency_raw,omitempty"`
}

func (r RoomRate) NaturalKey() string {
	return r.Date + "|" + strings.ToLower(strings.TrimSpace(r.RoomType))
}

// Event is a public event, optionally geo-tagged. JSON field names follow the
// downstream contract (Spanish keys).
type Event struct {
	Name       string   `json:"nombre"`
	Date       string   `json:"fecha"`
	Venue      string   `json:"lugar"`
	Link       string   `json:"enlace"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

func (e Event) NaturalKey() string {
	name := strings.ToLower(strings.TrimSpace(e.Name))
	venue := strings.ToLower(strings.TrimSpace(e.Venue))
	if name == "" && venue == "" && e.Date == "" {
		return e.Link
	}
	// Link tiebreaks distinct events that share name, venue and date.
	return name + "|" + venue + "|" + e.Date + "|" + e.Link
}

// ExtractionResult is the output of one pipeline invocation: the records plus
// the name of the strategy that produced them. An empty Records with a
// non-empty Strategy tag is a valid, non-erroring outcome.
type ExtractionResult struct {
	Records  []Record `json:"records"`
	Strategy string   `json:"strategy"`
}

// DayRates is the wire shape for price results: one entry per date.
type DayRates struct {
	Date  string      `json:"date"`
	Rooms []RoomEntry `json:"rooms"`
}

// RoomEntry is one room type + price inside a DayRates entry.
type RoomEntry struct {
	RoomType string `json:"room_type"`
	Price    string `json:"price"`
}

// GroupRates folds deduplicated room rates into the per-date wire shape,
// preserving first-seen date order and first-seen room order within a date.
func GroupRates(records []Record) []DayRates {
	var out []DayRates
	index := make(map[string]int)
	for _, rec := range records {
		rate, ok := rec.(RoomRate)
		if !ok {
			continue
		}
		i, seen := index[rate.Date]
		if !seen {
			index[rate.Date] = len(out)
			out = append(out, DayRates{Date: rate.Date})
			i = len(out) - 1
		}
		out[i].Rooms = append(out[i].Rooms, RoomEntry{RoomType: rate.RoomType, Price: rate.Price})
	}
	return out
}

// Events filters a record collection down to its events.
func Events(records []Record) []Event {
	out := make([]Event, 0, len(records))
	for _, rec := range records {
		if ev, ok := rec.(Event); ok {
			out = append(out, ev)
		}
	}
	return out
}
