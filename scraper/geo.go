package scraper

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// roundKm rounds a distance to two decimal places for output.
func roundKm(v float64) float64 {
	return math.Round(v*100) / 100
}

// distanceFilter applies the query's radius to a candidate coordinate.
// Items with unknown geo are included unconditionally with no distance.
// Returns include=false only when the item is geo-tagged and out of range.
func distanceFilter(q Query, lat, lon *float64) (include bool, distanceKm *float64) {
	if q.OriginLat == nil || q.OriginLon == nil || lat == nil || lon == nil {
		return true, nil
	}
	d := roundKm(HaversineKm(*q.OriginLat, *q.OriginLon, *lat, *lon))
	if q.RadiusKm > 0 && d > q.RadiusKm {
		return false, nil
	}
	return true, &d
}
