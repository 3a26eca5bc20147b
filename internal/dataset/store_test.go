package dataset_test

import (
	"testing"
	"time"

	"github.com/metroplexdata/caseboard/internal/dataset"
	"github.com/metroplexdata/caseboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StartsEmpty(t *testing.T) {
	store := dataset.NewStore()

	_, ok := store.Cases()
	assert.False(t, ok)
	_, ok = store.Metrics()
	assert.False(t, ok)
	_, ok = store.Headline()
	assert.False(t, ok)
	_, ok = store.Boundaries()
	assert.False(t, ok)

	assert.Zero(t, store.LoadedCount())
	assert.False(t, store.Ready())
}

func TestStore_ViewFallsBackToDefault(t *testing.T) {
	store := dataset.NewStore()
	assert.Equal(t, domain.DefaultView, store.View())
}

func TestStore_SlotsAreIndependent(t *testing.T) {
	store := dataset.NewStore()
	loadedAt := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	store.SetHeadline(dataset.HeadlineSnapshot{
		Headline: domain.Headline{TotalCases: 7},
		LoadedAt: loadedAt,
	})

	headline, ok := store.Headline()
	require.True(t, ok)
	assert.Equal(t, 7, headline.Headline.TotalCases)
	assert.Equal(t, loadedAt, headline.LoadedAt)

	_, ok = store.Cases()
	assert.False(t, ok, "setting one slot must not affect the others")
	assert.Equal(t, 1, store.LoadedCount())
}

func TestStore_ViewTracksBoundaries(t *testing.T) {
	store := dataset.NewStore()
	view := domain.ViewBounds{Lat: 33.0, Lon: -97.0, Zoom: 11}

	store.SetBoundaries(dataset.BoundariesSnapshot{View: view})
	assert.Equal(t, view, store.View())
}
