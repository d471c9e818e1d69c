// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package kroki

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Encode compresses diagram text with zlib at maximum compression and
// encodes the result as URL-safe base64. This is the payload format
// Kroki expects in GET request paths.
func Encode(text string) (string, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("creating zlib writer: %w", err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		return "", fmt.Errorf("compressing diagram: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compressing diagram: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode. Primarily a debugging aid: given a Kroki
// URL payload, recover the diagram source.
func Decode(encoded string) (string, error) {
	compressed, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding base64 payload: %w", err)
	}
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", fmt.Errorf("opening zlib payload: %w", err)
	}
	defer r.Close()
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decompressing payload: %w", err)
	}
	return string(text), nil
}
