package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/metroplexdata/caseboard/internal/adapter/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte("City\nRichardson\n"), 0o644))

	f := source.File{Path: path}
	data, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "City\nRichardson\n", string(data))
}

func TestFileFetch_Missing(t *testing.T) {
	f := source.File{Path: filepath.Join(t.TempDir(), "absent.csv")}
	_, err := f.Fetch(context.Background())
	require.Error(t, err)
}

func TestFileFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := source.File{Path: "irrelevant"}
	_, err := f.Fetch(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	t.Cleanup(srv.Close)

	h := source.NewHTTP(srv.URL, 5*time.Second)
	data, err := h.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
}

func TestHTTPFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	h := source.NewHTTP(srv.URL, 5*time.Second)
	_, err := h.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNew_SelectsFetcherByScheme(t *testing.T) {
	assert.IsType(t, &source.HTTP{}, source.New("https://files.example.org/cases.csv", time.Second))
	assert.IsType(t, &source.HTTP{}, source.New("http://files.example.org/cases.csv", time.Second))
	assert.IsType(t, source.File{}, source.New("data/cases.csv", time.Second))
}
