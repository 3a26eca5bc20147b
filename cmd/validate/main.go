// Command validate performs offline integrity checks across the four
// dashboard data files: the cases, metrics, and headline CSVs and the
// boundary GeoJSON. It verifies required headers, row counts, numeric
// columns, boundary publication state, and cross-file consistency, then
// prints the map view the service would compute for the set.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -cases data/cases.csv \
//	  -metrics data/metrics.csv \
//	  -headline data/headline.csv \
//	  -boundaries data/boundaries.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/metroplexdata/caseboard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	casesPath := flag.String("cases", "", "path to the cases CSV")
	metricsPath := flag.String("metrics", "", "path to the summary metrics CSV")
	headlinePath := flag.String("headline", "", "path to the headline CSV")
	boundariesPath := flag.String("boundaries", "", "path to the boundary GeoJSON")
	flag.Parse()

	if *casesPath == "" || *metricsPath == "" || *headlinePath == "" || *boundariesPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*casesPath, *metricsPath, *headlinePath, *boundariesPath); code != 0 {
		os.Exit(code)
	}
}

func run(casesPath, metricsPath, headlinePath, boundariesPath string) int {
	fmt.Println("=== Caseboard Data Validation ===")
	fmt.Println()

	casesData, err := os.ReadFile(casesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read cases: %v\n", err)
		return 1
	}
	metricsData, err := os.ReadFile(metricsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read metrics: %v\n", err)
		return 1
	}
	headlineData, err := os.ReadFile(headlinePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read headline: %v\n", err)
		return 1
	}
	boundariesData, err := os.ReadFile(boundariesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read boundaries: %v\n", err)
		return 1
	}

	cases, casesPhase := validateCases(casesData)
	counts, metricsPhase := validateMetrics(metricsData)
	headline, headlinePhase := validateHeadline(headlineData)
	features, boundariesPhase := validateBoundaries(boundariesData)
	consistencyPhase := validateConsistency(cases, counts, headline, features)

	phases := []*phase{casesPhase, metricsPhase, headlinePhase, boundariesPhase, consistencyPhase}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-32s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d cases, %d boundary features\n", len(cases), len(features))

	view := domain.ComputeView(features)
	fmt.Printf("Map view: center=(%.4f, %.4f) zoom=%d\n", view.Lat, view.Lon, view.Zoom)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("%3d. %s\n", i+1, e)
		}
	}

	if !allPassed {
		return 1
	}
	return 0
}

func validateCases(data []byte) ([]domain.CaseRecord, *phase) {
	p := &phase{name: "cases CSV"}

	cases, err := domain.ParseCases(data)
	if err != nil {
		p.errorf("parse: %v", err)
		return nil, p
	}
	if len(cases) == 0 {
		p.errorf("no case rows")
		return cases, p
	}

	seen := make(map[string]bool, len(cases))
	for _, c := range cases {
		if seen[c.City] {
			p.errorf("duplicate city %q", c.City)
		}
		seen[c.City] = true
		if c.TotalScore == 0 {
			p.errorf("city %q has zero or unparsable Total Score", c.City)
		}
	}
	return cases, p
}

func validateMetrics(data []byte) (domain.QualityCounts, *phase) {
	p := &phase{name: "metrics CSV"}

	counts, err := domain.ParseQualityCounts(data)
	if err != nil {
		p.errorf("parse: %v", err)
		return counts, p
	}
	if counts.VeryGood+counts.Good+counts.Normal+counts.Poor == 0 {
		p.errorf("all quality counts are zero")
	}
	return counts, p
}

func validateHeadline(data []byte) (domain.Headline, *phase) {
	p := &phase{name: "headline CSV"}

	headline, err := domain.ParseHeadline(data)
	if err != nil {
		p.errorf("parse: %v", err)
		return headline, p
	}
	if headline.CitiesCovered == 0 {
		p.errorf("Cities Covered is zero or unparsable")
	}
	if headline.TotalCases == 0 {
		p.errorf("Total Cases is zero or unparsable")
	}
	return headline, p
}

func validateBoundaries(data []byte) ([]domain.Feature, *phase) {
	p := &phase{name: "boundary GeoJSON"}

	// Count raw features to report how many drafts the filter drops.
	var raw struct {
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		p.errorf("decode: %v", err)
		return nil, p
	}

	features, err := domain.ParseBoundaries(data)
	if err != nil {
		p.errorf("parse: %v", err)
		return nil, p
	}
	if len(features) == 0 {
		p.errorf("no published features (all %d lack last_edited)", len(raw.Features))
		return features, p
	}
	if dropped := len(raw.Features) - len(features); dropped > 0 {
		fmt.Printf("  note: %d of %d features are unpublished drafts\n", dropped, len(raw.Features))
	}

	for _, f := range features {
		if f.Name() == "" {
			p.errorf("published feature missing %s", domain.PropCityName)
		}
	}
	return features, p
}

func validateConsistency(cases []domain.CaseRecord, counts domain.QualityCounts, headline domain.Headline, features []domain.Feature) *phase {
	p := &phase{name: "cross-file consistency"}
	if cases == nil {
		p.errorf("skipped: cases CSV failed to parse")
		return p
	}

	if headline.CitiesCovered != len(cases) {
		p.errorf("headline Cities Covered (%d) != case rows (%d)", headline.CitiesCovered, len(cases))
	}

	var caseTotal float64
	for _, c := range cases {
		caseTotal += c.VeryGood + c.Good + c.Normal + c.Poor
	}
	metricTotal := counts.VeryGood + counts.Good + counts.Normal + counts.Poor
	if metricTotal != 0 && caseTotal != metricTotal {
		p.errorf("summed case quality counts (%.0f) != metrics totals (%.0f)", caseTotal, metricTotal)
	}

	names := make(map[string]bool, len(features))
	for _, f := range features {
		names[f.Name()] = true
	}
	for _, c := range cases {
		if !names[c.City] {
			p.errorf("city %q has no published boundary feature", c.City)
		}
	}
	return p
}
