package domain

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property names used by the boundary GeoJSON file.
const (
	PropLastEdited = "last_edited"
	PropCityName   = "CITY_NM"
	PropPopulation = "POP2022"
)

// Feature is one city boundary: a Polygon or MultiPolygon geometry plus the
// attributes used for display. Features are read-only after load.
type Feature struct {
	Geometry   orb.Geometry
	Properties geojson.Properties
}

// Name returns the display name of the city, or "" when absent.
func (f Feature) Name() string {
	return f.Properties.MustString(PropCityName, "")
}

// Population returns the POP2022 attribute, or 0 when absent or non-numeric.
func (f Feature) Population() float64 {
	return f.Properties.MustFloat64(PropPopulation, 0)
}

// LastEdited returns the last_edited attribute as a string, or "" when absent.
func (f Feature) LastEdited() string {
	if v, ok := f.Properties[PropLastEdited]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Published reports whether the feature carries a non-empty last_edited
// attribute. Features without it are drafts and stay off the dashboard.
func (f Feature) Published() bool {
	return f.LastEdited() != ""
}

// ParseBoundaries decodes a GeoJSON FeatureCollection and returns the
// published features. Features without a last_edited attribute are dropped;
// a malformed document is an error.
func ParseBoundaries(data []byte) ([]Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse boundaries: %w", err)
	}

	features := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		feature := Feature{Geometry: f.Geometry, Properties: f.Properties}
		if !feature.Published() {
			continue
		}
		features = append(features, feature)
	}
	return features, nil
}

// FeatureCollection re-encodes features as a GeoJSON FeatureCollection
// carrying only the popup properties the dashboard displays.
func FeatureCollection(features []Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		out := geojson.NewFeature(f.Geometry)
		out.Properties = geojson.Properties{
			PropCityName:   f.Name(),
			PropPopulation: f.Population(),
			PropLastEdited: f.LastEdited(),
		}
		fc.Append(out)
	}
	return fc
}

// rings flattens a geometry into its coordinate rings. Geometries other
// than Polygon and MultiPolygon contribute nothing.
func rings(g orb.Geometry) []orb.Ring {
	switch geom := g.(type) {
	case orb.Polygon:
		return geom
	case orb.MultiPolygon:
		var rs []orb.Ring
		for _, p := range geom {
			rs = append(rs, p...)
		}
		return rs
	default:
		return nil
	}
}
