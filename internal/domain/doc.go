// Package domain models the datasets behind the city casework dashboard.
//
// # Data Sources
//
// The dashboard is fed by three flat CSV files and one GeoJSON file,
// published by the casework team after each review cycle. Columns are
// addressed by exact header name:
//
//	cases CSV (one row per reviewed city):
//	  "City", "Total Score", "Very Good", "Good", "Normal", "Poor",
//	  "Descriptions", "Locations", "Contacts", "Links to Extra Documents"
//
//	metrics CSV (single row):
//	  "Very Good", "Good", "Normal", "Poor" — counts behind the quality donut.
//
//	headline CSV (single row):
//	  "Cities Covered", "Total Cases", "Identified Contacts"
//
// The GeoJSON file carries city boundary polygons. Only features with a
// non-empty "last_edited" property are part of the published set; "CITY_NM"
// and "POP2022" are display attributes surfaced in map popups.
//
// # Coordinate Conventions
//
// Boundary geometries are WGS-84 polygons with [longitude, latitude]
// coordinate order. A coordinate pair is valid only when both components
// are finite, longitude is within [-180, 180], and latitude is within
// [-90, 90]. Invalid pairs are skipped, never reported: source files are
// occasionally hand-edited and a stray coordinate must not take down the
// map view.
//
// # Map View
//
// ComputeView frames all valid boundary coordinates: the center is the
// midpoint of the latitude and longitude extents, and the zoom level is
// picked from a descending threshold ladder over the larger of the two
// extents. When no valid coordinate exists anywhere in the input the view
// falls back to DefaultView, centered on the Dallas–Fort Worth metroplex.
package domain
