package domain

import "math"

// ViewBounds is the center coordinate and zoom level used to initialize the
// map viewport. It is derived from the current boundary set on every refresh
// and never persisted.
type ViewBounds struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// DefaultView frames the Dallas–Fort Worth metroplex. It is served whenever
// the boundary set contains no valid coordinate at all.
var DefaultView = ViewBounds{Lat: 32.9750, Lon: -96.7970, Zoom: 9}

// ComputeView derives the map view framing all valid coordinates in the
// given features. It is pure and total: every input, including an empty or
// fully-invalid one, yields a usable ViewBounds and no error.
func ComputeView(features []Feature) ViewBounds {
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)
	found := false

	for _, f := range features {
		for _, ring := range rings(f.Geometry) {
			for _, pt := range ring {
				lon, lat := pt.X(), pt.Y()
				if !validCoordinate(lon, lat) {
					continue
				}
				minLat = math.Min(minLat, lat)
				maxLat = math.Max(maxLat, lat)
				minLon = math.Min(minLon, lon)
				maxLon = math.Max(maxLon, lon)
				found = true
			}
		}
	}

	if !found {
		return DefaultView
	}

	spread := math.Max(maxLat-minLat, maxLon-minLon)
	return ViewBounds{
		Lat:  (minLat + maxLat) / 2,
		Lon:  (minLon + maxLon) / 2,
		Zoom: zoomForSpread(spread),
	}
}

// validCoordinate reports whether a [longitude, latitude] pair is finite
// and within WGS-84 range.
func validCoordinate(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// zoomForSpread maps a coordinate spread in degrees to a discrete zoom
// level. Thresholds are strict greater-than comparisons; a spread of
// exactly 1.0 lands on zoom 10, not 9.
func zoomForSpread(spread float64) int {
	switch {
	case spread > 3:
		return 7
	case spread > 2:
		return 8
	case spread > 1:
		return 9
	case spread > 0.5:
		return 10
	case spread > 0.2:
		return 11
	case spread > 0.1:
		return 12
	case spread > 0.05:
		return 13
	default:
		return 14
	}
}
