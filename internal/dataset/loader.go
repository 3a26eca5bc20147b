package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/metroplexdata/caseboard/internal/adapter/source"
	"github.com/metroplexdata/caseboard/internal/domain"
	"github.com/metroplexdata/caseboard/internal/observability"
)

// Notifier publishes an event after a dataset load completes.
type Notifier interface {
	NotifyRefresh(ctx context.Context, event RefreshEvent) error
}

// RefreshEvent describes one completed dataset load, so downstream
// consumers can invalidate anything derived from the previous snapshot.
type RefreshEvent struct {
	Dataset  string    `json:"dataset"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Fetchers provides one Fetcher per dataset.
type Fetchers struct {
	Cases      source.Fetcher
	Metrics    source.Fetcher
	Headline   source.Fetcher
	Boundaries source.Fetcher
}

// Loader fetches, parses, and publishes the four dashboard datasets. Loads
// are independent: each failure is logged and leaves that dataset's previous
// snapshot in place while the others proceed.
type Loader struct {
	store    *Store
	fetchers Fetchers
	notifier Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics

	loadTimeout     time.Duration
	refreshInterval time.Duration
}

// NewLoader creates a Loader. Pass a nil notifier to disable refresh
// notifications, and a zero refreshInterval to load once and stop.
func NewLoader(store *Store, fetchers Fetchers, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics, loadTimeout, refreshInterval time.Duration) *Loader {
	return &Loader{
		store:           store,
		fetchers:        fetchers,
		notifier:        notifier,
		logger:          logger,
		metrics:         metrics,
		loadTimeout:     loadTimeout,
		refreshInterval: refreshInterval,
	}
}

// CheckReadiness returns nil once every dataset has loaded successfully at
// least once, or an error describing what is still missing.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if n := l.store.LoadedCount(); n < 4 {
		return fmt.Errorf("%d of 4 datasets loaded", n)
	}
	return nil
}

// Run performs the initial load and then refreshes on the configured
// interval until the context is cancelled.
func (l *Loader) Run(ctx context.Context) error {
	l.logger.Info("dataset loader started", "refresh_interval", l.refreshInterval)
	l.RefreshAll(ctx)

	if l.refreshInterval == 0 {
		<-ctx.Done()
		l.logger.Info("dataset loader stopping", "reason", ctx.Err())
		return nil
	}

	ticker := clock.NewTicker(l.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("dataset loader stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			l.RefreshAll(ctx)
		}
	}
}

// RefreshAll loads all four datasets concurrently and waits for every load
// to settle. Each load writes only its own store slot, so no coordination
// is needed between them.
func (l *Loader) RefreshAll(ctx context.Context) {
	loads := []func(context.Context){
		l.loadCases,
		l.loadMetrics,
		l.loadHeadline,
		l.loadBoundaries,
	}

	var wg sync.WaitGroup
	for _, load := range loads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			load(ctx)
		}()
	}
	wg.Wait()

	l.metrics.DatasetsReady.Set(float64(l.store.LoadedCount()))
}

func (l *Loader) loadCases(ctx context.Context) {
	records, ok := fetchAndParse(ctx, l, NameCases, l.fetchers.Cases, domain.ParseCases)
	if !ok {
		return
	}
	l.store.SetCases(CasesSnapshot{Records: records, LoadedAt: clock.Now()})
	l.metrics.DatasetRows.WithLabelValues(NameCases).Set(float64(len(records)))
	l.notify(ctx, NameCases, len(records))
}

func (l *Loader) loadMetrics(ctx context.Context) {
	counts, ok := fetchAndParse(ctx, l, NameMetrics, l.fetchers.Metrics, domain.ParseQualityCounts)
	if !ok {
		return
	}
	l.store.SetMetrics(MetricsSnapshot{Counts: counts, LoadedAt: clock.Now()})
	l.metrics.DatasetRows.WithLabelValues(NameMetrics).Set(1)
	l.notify(ctx, NameMetrics, 1)
}

func (l *Loader) loadHeadline(ctx context.Context) {
	headline, ok := fetchAndParse(ctx, l, NameHeadline, l.fetchers.Headline, domain.ParseHeadline)
	if !ok {
		return
	}
	l.store.SetHeadline(HeadlineSnapshot{Headline: headline, LoadedAt: clock.Now()})
	l.metrics.DatasetRows.WithLabelValues(NameHeadline).Set(1)
	l.notify(ctx, NameHeadline, 1)
}

func (l *Loader) loadBoundaries(ctx context.Context) {
	features, ok := fetchAndParse(ctx, l, NameBoundaries, l.fetchers.Boundaries, domain.ParseBoundaries)
	if !ok {
		return
	}

	view := domain.ComputeView(features)
	l.metrics.ViewComputations.Inc()

	l.store.SetBoundaries(BoundariesSnapshot{Features: features, View: view, LoadedAt: clock.Now()})
	l.metrics.DatasetRows.WithLabelValues(NameBoundaries).Set(float64(len(features)))
	l.notify(ctx, NameBoundaries, len(features))
}

// fetchAndParse runs one fetch-and-parse cycle for a dataset under the
// configured load timeout, recording metrics. It returns false when either
// step fails; the caller then keeps the previous snapshot.
func fetchAndParse[T any](ctx context.Context, l *Loader, name string, fetcher source.Fetcher, parse func([]byte) (T, error)) (T, bool) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, l.loadTimeout)
	defer cancel()

	start := time.Now()

	data, err := fetcher.Fetch(ctx)
	if err != nil {
		l.logger.Error("dataset fetch failed", "dataset", name, "error", err)
		l.metrics.LoadsTotal.WithLabelValues(name, "fetch_error").Inc()
		return zero, false
	}

	parsed, err := parse(data)
	if err != nil {
		l.logger.Error("dataset parse failed", "dataset", name, "error", err)
		l.metrics.LoadsTotal.WithLabelValues(name, "parse_error").Inc()
		return zero, false
	}

	l.metrics.LoadsTotal.WithLabelValues(name, "success").Inc()
	l.metrics.LoadDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	l.logger.Debug("dataset loaded", "dataset", name, "bytes", len(data))
	return parsed, true
}

// notify publishes a refresh event when a notifier is configured. Publish
// failures are logged and counted but never fail the load.
func (l *Loader) notify(ctx context.Context, name string, rows int) {
	if l.notifier == nil {
		return
	}

	event := RefreshEvent{Dataset: name, Rows: rows, LoadedAt: clock.Now()}
	if err := l.notifier.NotifyRefresh(ctx, event); err != nil {
		l.logger.Warn("refresh notification failed", "dataset", name, "error", err)
		l.metrics.NotifierPublishes.WithLabelValues("error").Inc()
		return
	}
	l.metrics.NotifierPublishes.WithLabelValues("success").Inc()
}
