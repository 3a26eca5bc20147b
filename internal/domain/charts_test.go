package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSeries(t *testing.T) {
	cases := []CaseRecord{
		{City: "Garland", TotalScore: 64},
		{City: "Plano", TotalScore: 92},
		{City: "Richardson", TotalScore: 87.5},
		{City: "Allen", TotalScore: 92},
	}

	series := ScoreSeries(cases)

	want := []ScorePoint{
		{Label: "Allen", Value: 92},
		{Label: "Plano", Value: 92},
		{Label: "Richardson", Value: 87.5},
		{Label: "Garland", Value: 64},
	}
	if diff := cmp.Diff(want, series); diff != "" {
		t.Errorf("score series mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreSeries_Empty(t *testing.T) {
	assert.Empty(t, ScoreSeries(nil))
}

func TestQualityShares(t *testing.T) {
	shares := QualityShares(QualityCounts{VeryGood: 30, Good: 40, Normal: 20, Poor: 10})

	require.Len(t, shares, 4)
	assert.Equal(t, "Very Good", shares[0].Label)
	assert.InDelta(t, 30.0, shares[0].Percent, 1e-9)
	assert.Equal(t, "Good", shares[1].Label)
	assert.InDelta(t, 40.0, shares[1].Percent, 1e-9)
	assert.Equal(t, "Normal", shares[2].Label)
	assert.InDelta(t, 20.0, shares[2].Percent, 1e-9)
	assert.Equal(t, "Poor", shares[3].Label)
	assert.InDelta(t, 10.0, shares[3].Percent, 1e-9)
}

func TestQualityShares_ZeroTotal(t *testing.T) {
	shares := QualityShares(QualityCounts{})
	require.Len(t, shares, 4)
	for _, s := range shares {
		assert.Zero(t, s.Percent, "zero counts must not divide by zero")
	}
}

func TestTableRows(t *testing.T) {
	cases := []CaseRecord{
		{
			City:        "Richardson",
			TotalScore:  87.5,
			Description: "Annual review complete",
			Location:    "400 W Arapaho Rd",
			Contact:     "records@cor.gov",
			DocumentURL: "https://example.org/richardson.pdf",
		},
	}

	rows := TableRows(cases)
	require.Len(t, rows, 1)
	assert.Equal(t, TableRow{
		City:        "Richardson",
		TotalScore:  87.5,
		Description: "Annual review complete",
		Location:    "400 W Arapaho Rd",
		Contact:     "records@cor.gov",
		DocumentURL: "https://example.org/richardson.pdf",
	}, rows[0])
}
