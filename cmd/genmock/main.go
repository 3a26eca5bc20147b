// Command genmock writes a self-consistent set of mock data files for local
// development: cases, metrics, and headline CSVs plus a boundary GeoJSON.
// It parses everything back through the domain package afterwards so the
// fixtures are guaranteed to load in the service.
//
// Usage:
//
//	go run ./cmd/genmock -out data
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/metroplexdata/caseboard/internal/domain"
)

// mockCity is one generated city: its case row and a rectangular boundary.
type mockCity struct {
	name       string
	score      float64
	veryGood   float64
	good       float64
	normal     float64
	poor       float64
	population float64
	lastEdited string
	// Bounding rectangle, [lonMin, latMin, lonMax, latMax].
	bbox [4]float64
}

var cities = []mockCity{
	{"Richardson", 87.5, 12, 8, 3, 1, 119469, "2024-03-18", [4]float64{-96.7632, 32.9232, -96.6126, 33.0066}},
	{"Plano", 92, 15, 6, 2, 0, 289547, "2024-02-02", [4]float64{-96.8549, 33.0075, -96.6123, 33.1228}},
	{"Garland", 64, 4, 9, 5, 2, 242507, "2024-04-09", [4]float64{-96.7046, 32.8577, -96.5521, 32.9704}},
	{"Allen", 78, 7, 7, 4, 1, 111551, "2024-01-27", [4]float64{-96.7310, 33.0788, -96.6127, 33.1502}},
	{"Sachse", 71, 3, 5, 3, 1, 27103, "2024-03-30", [4]float64{-96.6334, 32.9525, -96.5506, 33.0041}},
}

func main() {
	out := flag.String("out", "data", "output directory for mock data files")
	flag.Parse()

	if err := run(*out); err != nil {
		log.Fatal(err)
	}
}

func run(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := map[string][]byte{
		"cases.csv":          casesCSV(),
		"metrics.csv":        metricsCSV(),
		"headline.csv":       headlineCSV(),
		"boundaries.geojson": boundariesGeoJSON(),
	}
	for name, data := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(data))
	}

	return verify(files)
}

// verify parses the generated fixtures back through the domain package.
func verify(files map[string][]byte) error {
	cases, err := domain.ParseCases(files["cases.csv"])
	if err != nil {
		return err
	}
	if _, err := domain.ParseQualityCounts(files["metrics.csv"]); err != nil {
		return err
	}
	if _, err := domain.ParseHeadline(files["headline.csv"]); err != nil {
		return err
	}
	features, err := domain.ParseBoundaries(files["boundaries.geojson"])
	if err != nil {
		return err
	}

	view := domain.ComputeView(features)
	fmt.Printf("verified: %d cases, %d features, view center=(%.4f, %.4f) zoom=%d\n",
		len(cases), len(features), view.Lat, view.Lon, view.Zoom)
	return nil
}

func casesCSV() []byte {
	out := "City,Total Score,Very Good,Good,Normal,Poor,Descriptions,Locations,Contacts,Links to Extra Documents\n"
	for _, c := range cities {
		out += fmt.Sprintf("%s,%g,%g,%g,%g,%g,Review cycle complete,City Hall,records@%s.example.gov,https://files.example.org/%s.pdf\n",
			c.name, c.score, c.veryGood, c.good, c.normal, c.poor, strings.ToLower(c.name), strings.ToLower(c.name))
	}
	return []byte(out)
}

func metricsCSV() []byte {
	var vg, g, n, p float64
	for _, c := range cities {
		vg += c.veryGood
		g += c.good
		n += c.normal
		p += c.poor
	}
	return []byte(fmt.Sprintf("Very Good,Good,Normal,Poor\n%g,%g,%g,%g\n", vg, g, n, p))
}

func headlineCSV() []byte {
	var total float64
	for _, c := range cities {
		total += c.veryGood + c.good + c.normal + c.poor
	}
	return []byte(fmt.Sprintf("Cities Covered,Total Cases,Identified Contacts\n%d,%g,%d\n",
		len(cities), total, len(cities)*3))
}

func boundariesGeoJSON() []byte {
	type geom struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}
	type feature struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
		Geometry   geom           `json:"geometry"`
	}
	type collection struct {
		Type     string    `json:"type"`
		Features []feature `json:"features"`
	}

	fc := collection{Type: "FeatureCollection"}
	for _, c := range cities {
		ring := [][2]float64{
			{c.bbox[0], c.bbox[1]},
			{c.bbox[2], c.bbox[1]},
			{c.bbox[2], c.bbox[3]},
			{c.bbox[0], c.bbox[3]},
			{c.bbox[0], c.bbox[1]},
		}
		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Properties: map[string]any{
				domain.PropCityName:   c.name,
				domain.PropPopulation: c.population,
				domain.PropLastEdited: c.lastEdited,
			},
			Geometry: geom{Type: "Polygon", Coordinates: [][][2]float64{ring}},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		panic(err) // static input, cannot fail
	}
	return data
}
