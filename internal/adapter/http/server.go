// Package http serves the dashboard API: health and metrics endpoints plus
// the JSON datasets the browser client renders.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/metroplexdata/caseboard/internal/dataset"
	"github.com/metroplexdata/caseboard/internal/domain"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard API over HTTP.
type Server struct {
	httpServer *http.Server
	store      *dataset.Store
	logger     *slog.Logger
}

// NewServer creates the API server. The router is wrapped in a CORS handler
// because the dashboard is a cross-origin browser client.
func NewServer(addr string, allowedOrigins []string, store *dataset.Store, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger,
	}

	router := mux.NewRouter()
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", handleReady(ready)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/cases", s.handleCases).Methods(http.MethodGet)
	api.HandleFunc("/charts/scores", s.handleScoreChart).Methods(http.MethodGet)
	api.HandleFunc("/charts/quality", s.handleQualityChart).Methods(http.MethodGet)
	api.HandleFunc("/headline", s.handleHeadline).Methods(http.MethodGet)
	api.HandleFunc("/map/view", s.handleMapView).Methods(http.MethodGet)
	api.HandleFunc("/map/boundaries", s.handleMapBoundaries).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      corsHandler(allowedOrigins, router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// corsHandler wraps the router in a CORS handler that responds to OPTIONS
// requests with the headers CORS-enabled clients need.
func corsHandler(allowedOrigins []string, router *mux.Router) http.Handler {
	originsOk := handlers.AllowedOrigins(allowedOrigins)
	headersOk := handlers.AllowedHeaders([]string{"Accept", "Content-Type", "X-Requested-With"})
	methodsOk := handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions})

	return handlers.CORS(originsOk, headersOk, methodsOk)(router)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// datasetPayload is the envelope for tabular dataset responses.
type datasetPayload struct {
	Data     any       `json:"data"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *Server) handleCases(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Cases()
	if !ok {
		writeDatasetUnavailable(w, dataset.NameCases)
		return
	}
	writeJSON(w, http.StatusOK, datasetPayload{
		Data:     domain.TableRows(snap.Records),
		LoadedAt: snap.LoadedAt,
	})
}

func (s *Server) handleScoreChart(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Cases()
	if !ok {
		writeDatasetUnavailable(w, dataset.NameCases)
		return
	}
	writeJSON(w, http.StatusOK, datasetPayload{
		Data:     domain.ScoreSeries(snap.Records),
		LoadedAt: snap.LoadedAt,
	})
}

func (s *Server) handleQualityChart(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Metrics()
	if !ok {
		writeDatasetUnavailable(w, dataset.NameMetrics)
		return
	}
	writeJSON(w, http.StatusOK, datasetPayload{
		Data:     domain.QualityShares(snap.Counts),
		LoadedAt: snap.LoadedAt,
	})
}

func (s *Server) handleHeadline(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Headline()
	if !ok {
		writeDatasetUnavailable(w, dataset.NameHeadline)
		return
	}
	writeJSON(w, http.StatusOK, datasetPayload{
		Data:     snap.Headline,
		LoadedAt: snap.LoadedAt,
	})
}

// handleMapView always answers 200: before the first boundaries load the
// store serves the default view, so the map can render regardless.
func (s *Server) handleMapView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.View())
}

// handleMapBoundaries degrades to an empty FeatureCollection before the
// first boundaries load.
func (s *Server) handleMapBoundaries(w http.ResponseWriter, _ *http.Request) {
	snap, _ := s.store.Boundaries()
	writeJSON(w, http.StatusOK, domain.FeatureCollection(snap.Features))
}

func writeDatasetUnavailable(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"error":   "dataset not loaded",
		"dataset": name,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
