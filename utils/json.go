package utils

import (
	"encoding/json"
	"os"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

// WriteJSON writes a job's output payload to filename as indented JSON.
// Prices are grouped into the per-date wire shape; events stay flat. Returns
// the number of top-level entries written.
func WriteJSON(filename string, content models.ContentType, records []models.Record) (int, error) {
	payload := Payload(content, records)

	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return 0, err
	}

	switch v := payload.(type) {
	case []models.DayRates:
		return len(v), nil
	case []models.Event:
		return len(v), nil
	}
	return 0, nil
}

// Payload maps a record collection to its JSON wire shape. The result is
// always a well-formed array, empty when there is nothing to report.
func Payload(content models.ContentType, records []models.Record) any {
	switch content {
	case models.ContentEvents:
		events := models.Events(records)
		if events == nil {
			events = []models.Event{}
		}
		return events
	default:
		days := models.GroupRates(records)
		if days == nil {
			days = []models.DayRates{}
		}
		return days
	}
}
