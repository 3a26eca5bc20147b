package domain

import "sort"

// ScorePoint is one bar of the city score chart.
type ScorePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// QualityShare is one segment of the quality donut chart.
type QualityShare struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// TableRow is one row of the dashboard data table: a case record projected
// to its display columns.
type TableRow struct {
	City        string  `json:"city"`
	TotalScore  float64 `json:"total_score"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Contact     string  `json:"contact"`
	DocumentURL string  `json:"document_url"`
}

// ScoreSeries shapes case records into the bar chart series, highest score
// first. Ties order by city name so output is stable across refreshes.
func ScoreSeries(cases []CaseRecord) []ScorePoint {
	points := make([]ScorePoint, len(cases))
	for i, c := range cases {
		points[i] = ScorePoint{Label: c.City, Value: c.TotalScore}
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}

// QualityShares converts the quality counts into percentage segments in
// fixed display order. A zero total yields all-zero shares, not an error.
func QualityShares(c QualityCounts) []QualityShare {
	total := c.VeryGood + c.Good + c.Normal + c.Poor

	percent := func(v float64) float64 {
		if total == 0 {
			return 0
		}
		return v / total * 100
	}

	return []QualityShare{
		{Label: ColVeryGood, Percent: percent(c.VeryGood)},
		{Label: ColGood, Percent: percent(c.Good)},
		{Label: ColNormal, Percent: percent(c.Normal)},
		{Label: ColPoor, Percent: percent(c.Poor)},
	}
}

// TableRows projects case records onto the dashboard table columns,
// preserving file order.
func TableRows(cases []CaseRecord) []TableRow {
	rows := make([]TableRow, len(cases))
	for i, c := range cases {
		rows[i] = TableRow{
			City:        c.City,
			TotalScore:  c.TotalScore,
			Description: c.Description,
			Location:    c.Location,
			Contact:     c.Contact,
			DocumentURL: c.DocumentURL,
		}
	}
	return rows
}
