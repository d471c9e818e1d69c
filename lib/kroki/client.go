// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package kroki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseSize bounds rendered diagram reads: 64 MB. Rendered
// output is normally a few kilobytes of SVG; the bound only guards
// against a pathological server.
const maxResponseSize int64 = 64 << 20

// maxGetURLLength is the longest GET URL the client will emit.
// Diagrams whose encoded form pushes the URL past this limit are
// submitted via POST instead; intermediaries commonly reject longer
// request lines.
const maxGetURLLength = 4096

// DefaultServerURL is the public Kroki instance.
const DefaultServerURL = "https://kroki.io"

// Client renders diagrams against a Kroki server.
type Client struct {
	// ServerURL is the server base URL, without a trailing slash.
	ServerURL string

	// HTTP is the underlying client. Nil means a client with a
	// 30-second timeout.
	HTTP *http.Client
}

// NewClient returns a Client for serverURL, or the public instance
// when serverURL is empty.
func NewClient(serverURL string) *Client {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Client{
		ServerURL: strings.TrimSuffix(serverURL, "/"),
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// DiagramURL returns the GET URL that renders text as typ in format.
func (c *Client) DiagramURL(typ DiagramType, format OutputFormat, text string) (string, error) {
	encoded, err := Encode(text)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s/%s", c.ServerURL, typ, format, encoded), nil
}

// Render submits text to the server and returns the rendered diagram
// bytes. Small diagrams go as GET requests with the encoded payload in
// the path; diagrams whose URL would exceed maxGetURLLength go as
// plain-text POST bodies.
func (c *Client) Render(ctx context.Context, typ DiagramType, format OutputFormat, text string) ([]byte, error) {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	getURL, err := c.DiagramURL(typ, format, text)
	if err != nil {
		return nil, err
	}

	var req *http.Request
	if len(getURL) <= maxGetURLLength {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
	} else {
		postURL := fmt.Sprintf("%s/%s/%s", c.ServerURL, typ, format)
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, postURL, strings.NewReader(text))
		if err == nil {
			req.Header.Set("Content-Type", "text/plain")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("building render request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rendering %s diagram: %w", typ, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return nil, fmt.Errorf("rendering %s diagram: server returned %s: %s", typ, resp.Status, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading rendered diagram: %w", err)
	}
	return data, nil
}
