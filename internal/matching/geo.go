package matching

import "math"

const earthRadiusKm = 6371.0

// Coordinate is a WGS84 lat/lng pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

// DistanceKm returns the great-circle distance between two points (haversine).
func DistanceKm(a, b Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// LocationScore maps proximity to (0,1] with an inverse decay:
// score = 1 / (1 + distance/refKm). A missing coordinate on either side is
// neutral (0.5): unknown proximity is neither penalized nor rewarded.
func LocationScore(a, b *Coordinate, refKm float64) float64 {
	if a == nil || b == nil {
		return 0.5
	}
	return 1.0 / (1.0 + DistanceKm(*a, *b)/refKm)
}
