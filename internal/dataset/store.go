package dataset

import (
	"sync/atomic"
	"time"

	"github.com/metroplexdata/caseboard/internal/domain"
)

// Dataset names used in logs, metrics, and refresh notifications.
const (
	NameCases      = "cases"
	NameMetrics    = "metrics"
	NameHeadline   = "headline"
	NameBoundaries = "boundaries"
)

// CasesSnapshot is the parsed contents of one cases CSV load.
type CasesSnapshot struct {
	Records  []domain.CaseRecord
	LoadedAt time.Time
}

// MetricsSnapshot is the parsed contents of one summary-metrics CSV load.
type MetricsSnapshot struct {
	Counts   domain.QualityCounts
	LoadedAt time.Time
}

// HeadlineSnapshot is the parsed contents of one headline CSV load.
type HeadlineSnapshot struct {
	Headline domain.Headline
	LoadedAt time.Time
}

// BoundariesSnapshot holds the published boundary features and the map view
// derived from them. The view is computed once per load, not per request.
type BoundariesSnapshot struct {
	Features []domain.Feature
	View     domain.ViewBounds
	LoadedAt time.Time
}

// Store holds the current snapshot of each dataset. Each dataset occupies
// its own atomically-swapped slot, so concurrent loads never coordinate:
// a completed load publishes its slot and readers always see either the
// previous snapshot or the new one, whole.
type Store struct {
	cases      atomic.Pointer[CasesSnapshot]
	metrics    atomic.Pointer[MetricsSnapshot]
	headline   atomic.Pointer[HeadlineSnapshot]
	boundaries atomic.Pointer[BoundariesSnapshot]
}

// NewStore creates an empty Store; every dataset starts unset.
func NewStore() *Store {
	return &Store{}
}

// SetCases publishes a new cases snapshot.
func (s *Store) SetCases(snap CasesSnapshot) { s.cases.Store(&snap) }

// Cases returns the current cases snapshot. ok is false before the first
// successful load.
func (s *Store) Cases() (CasesSnapshot, bool) {
	p := s.cases.Load()
	if p == nil {
		return CasesSnapshot{}, false
	}
	return *p, true
}

// SetMetrics publishes a new summary-metrics snapshot.
func (s *Store) SetMetrics(snap MetricsSnapshot) { s.metrics.Store(&snap) }

// Metrics returns the current summary-metrics snapshot.
func (s *Store) Metrics() (MetricsSnapshot, bool) {
	p := s.metrics.Load()
	if p == nil {
		return MetricsSnapshot{}, false
	}
	return *p, true
}

// SetHeadline publishes a new headline snapshot.
func (s *Store) SetHeadline(snap HeadlineSnapshot) { s.headline.Store(&snap) }

// Headline returns the current headline snapshot.
func (s *Store) Headline() (HeadlineSnapshot, bool) {
	p := s.headline.Load()
	if p == nil {
		return HeadlineSnapshot{}, false
	}
	return *p, true
}

// SetBoundaries publishes a new boundaries snapshot.
func (s *Store) SetBoundaries(snap BoundariesSnapshot) { s.boundaries.Store(&snap) }

// Boundaries returns the current boundaries snapshot.
func (s *Store) Boundaries() (BoundariesSnapshot, bool) {
	p := s.boundaries.Load()
	if p == nil {
		return BoundariesSnapshot{}, false
	}
	return *p, true
}

// View returns the map view for the current boundary set, falling back to
// the default view before the first successful boundaries load.
func (s *Store) View() domain.ViewBounds {
	if snap, ok := s.Boundaries(); ok {
		return snap.View
	}
	return domain.DefaultView
}

// LoadedCount returns how many datasets have loaded successfully at least once.
func (s *Store) LoadedCount() int {
	n := 0
	if s.cases.Load() != nil {
		n++
	}
	if s.metrics.Load() != nil {
		n++
	}
	if s.headline.Load() != nil {
		n++
	}
	if s.boundaries.Load() != nil {
		n++
	}
	return n
}

// Ready reports whether every dataset has loaded at least once.
func (s *Store) Ready() bool {
	return s.LoadedCount() == 4
}
