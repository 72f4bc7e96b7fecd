package geo

import "math"

// ValidLatLon reports whether lat/lon are finite and inside WGS84 ranges.
func ValidLatLon(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}

	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Point splits feed coordinates into lon, lat and depth.
// ok is false when fewer than three finite values are present or the position is out of range.
func (g Geometry) Point() (lon, lat, depth float64, ok bool) {
	if len(g.Coordinates) < 3 {
		return 0, 0, 0, false
	}

	lon, lat, depth = g.Coordinates[0], g.Coordinates[1], g.Coordinates[2]
	if !Finite(depth) || !ValidLatLon(lat, lon) {
		return 0, 0, 0, false
	}

	return lon, lat, depth, true
}
