package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/EstebanCaso/arkus-scraper-worker/models"
)

func TestCacheStoreExpiry(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cache := NewCacheStore(10*time.Minute, clock)
	key := CacheKey(floatPtr(19.4326), floatPtr(-99.1332), 10, "conciertos")

	records := []models.Record{models.Event{Name: "Noche de Jazz", Link: "/e/jazz"}}
	cache.Put(key, records)

	got, ok := cache.Get(key)
	require.True(t, ok)
	require.Equal(t, records, got)

	// One second before expiry: still served.
	now = now.Add(10*time.Minute - time.Second)
	_, ok = cache.Get(key)
	require.True(t, ok)

	// At the TTL boundary: expired.
	now = now.Add(time.Second)
	_, ok = cache.Get(key)
	require.False(t, ok)
}

func TestCacheKeyRoundsCoordinates(t *testing.T) {
	a := CacheKey(floatPtr(19.43261), floatPtr(-99.13322), 10, "Conciertos")
	b := CacheKey(floatPtr(19.43289), floatPtr(-99.13299), 10, "conciertos ")
	require.Equal(t, a, b, "origins within ~100m share an entry; keyword is normalised")

	c := CacheKey(floatPtr(19.43261), floatPtr(-99.13322), 15, "conciertos")
	require.NotEqual(t, a, c, "radius is part of the key")
}

func TestCacheKeyWithoutOrigin(t *testing.T) {
	require.Equal(t, "-|-|0.0|teatro", CacheKey(nil, nil, 0, "Teatro"))
}
