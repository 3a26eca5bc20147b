package domain

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names of the cases CSV.
const (
	ColCity        = "City"
	ColTotalScore  = "Total Score"
	ColVeryGood    = "Very Good"
	ColGood        = "Good"
	ColNormal      = "Normal"
	ColPoor        = "Poor"
	ColDescription = "Descriptions"
	ColLocation    = "Locations"
	ColContact     = "Contacts"
	ColDocuments   = "Links to Extra Documents"
)

// Column names of the headline CSV.
const (
	ColCitiesCovered      = "Cities Covered"
	ColTotalCases         = "Total Cases"
	ColIdentifiedContacts = "Identified Contacts"
)

// ErrNoRows is returned when a CSV file contains a header but no data rows.
var ErrNoRows = errors.New("csv has no data rows")

// CaseRecord is one row of the case-level CSV: a reviewed city with its
// score breakdown and contact details.
type CaseRecord struct {
	City        string
	TotalScore  float64
	VeryGood    float64
	Good        float64
	Normal      float64
	Poor        float64
	Description string
	Location    string
	Contact     string
	DocumentURL string
}

// QualityCounts is the single-row summary metrics record feeding the
// quality donut chart.
type QualityCounts struct {
	VeryGood float64 `json:"very_good"`
	Good     float64 `json:"good"`
	Normal   float64 `json:"normal"`
	Poor     float64 `json:"poor"`
}

// Headline is the single-row headline-numbers record.
type Headline struct {
	CitiesCovered      int `json:"cities_covered"`
	TotalCases         int `json:"total_cases"`
	IdentifiedContacts int `json:"identified_contacts"`
}

// ParseCases parses the case-level CSV. The City column is required; rows
// with a blank city are skipped, and unparsable numeric cells read as 0 so
// a single bad cell never drops a whole row.
func ParseCases(data []byte) ([]CaseRecord, error) {
	header, rows, err := readCSV(data, ColCity)
	if err != nil {
		return nil, fmt.Errorf("parse cases: %w", err)
	}

	records := make([]CaseRecord, 0, len(rows))
	for _, row := range rows {
		city := strings.TrimSpace(header.get(row, ColCity))
		if city == "" {
			continue
		}
		records = append(records, CaseRecord{
			City:        city,
			TotalScore:  parseFloatOrZero(header.get(row, ColTotalScore)),
			VeryGood:    parseFloatOrZero(header.get(row, ColVeryGood)),
			Good:        parseFloatOrZero(header.get(row, ColGood)),
			Normal:      parseFloatOrZero(header.get(row, ColNormal)),
			Poor:        parseFloatOrZero(header.get(row, ColPoor)),
			Description: header.get(row, ColDescription),
			Location:    header.get(row, ColLocation),
			Contact:     header.get(row, ColContact),
			DocumentURL: header.get(row, ColDocuments),
		})
	}
	return records, nil
}

// ParseQualityCounts parses the single-row summary metrics CSV. Only the
// first data row is read; any further rows are ignored.
func ParseQualityCounts(data []byte) (QualityCounts, error) {
	header, rows, err := readCSV(data, ColVeryGood, ColGood, ColNormal, ColPoor)
	if err != nil {
		return QualityCounts{}, fmt.Errorf("parse metrics: %w", err)
	}
	if len(rows) == 0 {
		return QualityCounts{}, fmt.Errorf("parse metrics: %w", ErrNoRows)
	}

	row := rows[0]
	return QualityCounts{
		VeryGood: parseFloatOrZero(header.get(row, ColVeryGood)),
		Good:     parseFloatOrZero(header.get(row, ColGood)),
		Normal:   parseFloatOrZero(header.get(row, ColNormal)),
		Poor:     parseFloatOrZero(header.get(row, ColPoor)),
	}, nil
}

// ParseHeadline parses the single-row headline-numbers CSV.
func ParseHeadline(data []byte) (Headline, error) {
	header, rows, err := readCSV(data, ColCitiesCovered, ColTotalCases, ColIdentifiedContacts)
	if err != nil {
		return Headline{}, fmt.Errorf("parse headline: %w", err)
	}
	if len(rows) == 0 {
		return Headline{}, fmt.Errorf("parse headline: %w", ErrNoRows)
	}

	row := rows[0]
	return Headline{
		CitiesCovered:      parseIntOrZero(header.get(row, ColCitiesCovered)),
		TotalCases:         parseIntOrZero(header.get(row, ColTotalCases)),
		IdentifiedContacts: parseIntOrZero(header.get(row, ColIdentifiedContacts)),
	}, nil
}

// headerIndex maps column names to their position in the header row.
type headerIndex map[string]int

// get returns the cell for the named column, or "" when the column is
// absent or the row is short.
func (h headerIndex) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// readCSV reads the whole file, builds the header index, and verifies the
// required columns are present.
func readCSV(data []byte, required ...string) (headerIndex, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // hand-edited files have ragged rows

	headerRow, err := r.Read()
	if err == io.EOF {
		return nil, nil, errors.New("empty file")
	}
	if err != nil {
		return nil, nil, err
	}

	header := make(headerIndex, len(headerRow))
	for i, name := range headerRow {
		header[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseIntOrZero parses a string as int, returning 0 on failure. Values
// with thousands separators ("12,345") are accepted.
func parseIntOrZero(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
