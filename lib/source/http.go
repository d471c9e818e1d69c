// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package source

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxResponseSize is the bound on remote content reads: 64 MB. This
// exists solely to prevent a pathological response from exhausting
// memory. Diagram sources and data files are orders of magnitude
// smaller; the limit is intentionally generous so that it never
// interferes with normal operation.
const MaxResponseSize int64 = 64 << 20

// defaultFetchTimeout bounds a single remote fetch. The preprocessing
// engine has no cancellation of its own, so a hung read would block
// the whole expansion without this.
const defaultFetchTimeout = 30 * time.Second

// HTTPSource fetches content from remote URLs.
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource returns an HTTPSource using client, or a client with
// the default fetch timeout when client is nil.
func NewHTTPSource(client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &HTTPSource{client: client}
}

// Exists probes url with a HEAD request.
func (h *HTTPSource) Exists(url string) bool {
	resp, err := h.client.Head(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Read fetches url and returns the response body, bounded at
// MaxResponseSize bytes.
func (h *HTTPSource) Read(url string) ([]byte, error) {
	resp, err := h.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response from %q: %w", url, err)
	}
	return data, nil
}
