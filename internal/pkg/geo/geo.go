package geo

import "math"

const earthRadius = 6371000 // meters

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// HaversineMeters returns the great-circle distance between a and b in meters.
func HaversineMeters(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// DistanceMeters is HaversineMeters rounded to the nearest whole meter.
func DistanceMeters(a, b Point) int {
	return int(math.Round(HaversineMeters(a, b)))
}

// WithinRadius reports whether p lies inside the circle around center.
// The boundary counts as inside.
func WithinRadius(p, center Point, radiusMeters int) (distance int, within bool) {
	distance = DistanceMeters(p, center)
	return distance, distance <= radiusMeters
}

// Valid reports whether p is a plausible coordinate pair.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Latitude) && !math.IsNaN(p.Longitude) &&
		p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
