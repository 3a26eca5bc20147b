// Package source provides fetchers for the raw dataset files, whether they
// live on the local filesystem or behind an HTTP endpoint.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes of one dataset.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// New returns a Fetcher for the given source: http(s) URLs get an HTTP
// fetcher with the given timeout, everything else is read as a file path.
func New(src string, timeout time.Duration) Fetcher {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return NewHTTP(src, timeout)
	}
	return File{Path: src}
}

// File reads a dataset from the local filesystem.
type File struct {
	Path string
}

func (f File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

// HTTP fetches a dataset over http(s).
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP fetcher with its own client and timeout.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (h *HTTP) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", h.url, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", h.url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", h.url, err)
	}
	return data, nil
}
