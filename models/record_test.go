package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupRatesPreservesOrder(t *testing.T) {
	records := []Record{
		RoomRate{Date: "2026-09-01", RoomType: "Doble", Price: "$1,200"},
		RoomRate{Date: "2026-09-01", RoomType: "Suite", Price: "$2,400"},
		RoomRate{Date: "2026-09-02", RoomType: "Doble", Price: "$1,150"},
	}

	days := GroupRates(records)
	require.Len(t, days, 2)
	require.Equal(t, "2026-09-01", days[0].Date)
	require.Len(t, days[0].Rooms, 2)
	require.Equal(t, "Doble", days[0].Rooms[0].RoomType)
	require.Equal(t, "2026-09-02", days[1].Date)
}

func TestGroupRatesIgnoresEvents(t *testing.T) {
	days := GroupRates([]Record{Event{Name: "Concierto"}})
	require.Empty(t, days)
}

func TestRoomRateNaturalKeyCaseInsensitive(t *testing.T) {
	a := RoomRate{Date: "2026-09-01", RoomType: "Habitación Doble"}
	b := RoomRate{Date: "2026-09-01", RoomType: "habitación doble "}
	require.Equal(t, a.NaturalKey(), b.NaturalKey())

	c := RoomRate{Date: "2026-09-02", RoomType: "Habitación Doble"}
	require.NotEqual(t, a.NaturalKey(), c.NaturalKey())
}

func TestEventNaturalKeyFallsBackToLink(t *testing.T) {
	bare := Event{Link: "/e/misterioso"}
	require.Equal(t, "/e/misterioso", bare.NaturalKey())

	named := Event{Name: "Feria", Venue: "Zócalo", Date: "2026-09-10", Link: "/e/feria"}
	require.NotEqual(t, bare.NaturalKey(), named.NaturalKey())
}

func TestNewScrapeJobDefaults(t *testing.T) {
	prices := NewScrapeJob(ContentPrices, "Hotel Lucerna")
	require.Equal(t, 30, prices.Days)
	require.Equal(t, 3, prices.Concurrency)
	require.True(t, prices.Headless)
	require.NotEmpty(t, prices.ID)

	events := NewScrapeJob(ContentEvents, "conciertos")
	require.Equal(t, 1, events.Days)
}

func TestDebugJobsRunHeadful(t *testing.T) {
	job := NewScrapeJob(ContentPrices, "Hotel Lucerna")
	require.True(t, job.EffectiveHeadless())

	job.Debug = true
	require.False(t, job.EffectiveHeadless())

	job.Debug = false
	job.Headless = false
	require.False(t, job.EffectiveHeadless())
}
