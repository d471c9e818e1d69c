// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// Package vega rewrites Vega-Lite specifications to carry their data
// inline. Kroki servers cannot follow a data.url reference that points
// into the author's filesystem, so the referenced file is read before
// submission and attached as inline values.
//
// The transform is one-shot and non-recursive: parse the spec as
// relaxed JSON (comments and trailing commas allowed), and when a
// top-level data.url is present, replace it with data.values plus an
// inferred format tag. Specs without data.url pass through unchanged.
package vega

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/anb0s/asciidoctor-kroki/lib/source"
)

// ParseError indicates that the document is not valid relaxed JSON.
type ParseError struct {
	// Document is the offending input text.
	Document string

	// Err is the underlying JSON error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing Vega-Lite specification: %v (document: %s)", e.Err, e.Document)
}

func (e *ParseError) Unwrap() error { return e.Err }

// dataFormats are the format tags Vega-Lite understands for inline
// values. Extensions outside this set fall back to json.
var dataFormats = map[string]bool{
	"json":     true,
	"csv":      true,
	"tsv":      true,
	"dsv":      true,
	"topojson": true,
}

// Inliner inlines data.url references. The zero value reads through
// source.Default() and discards diagnostics.
type Inliner struct {
	// Source supplies referenced data files. Nil means
	// source.Default().
	Source source.Source

	// Logger receives the warning when a remote data.url cannot be
	// read. Nil discards it.
	Logger *slog.Logger
}

// InlineData rewrites text with src as the content source and the
// current working directory as the base for relative references.
func InlineData(text string, src source.Source) (string, error) {
	i := Inliner{Source: src}
	return i.InlineData(text, "")
}

// InlineData parses text as a relaxed-JSON Vega-Lite spec and inlines
// its top-level data.url reference, resolving relative references
// against dir. Specs without data.url are returned unchanged. A remote
// reference that cannot be read is soft: the input is returned
// unchanged with a warning. A local reference that cannot be read is
// a hard failure, as is unparseable input.
func (i *Inliner) InlineData(text, dir string) (string, error) {
	src := i.Source
	if src == nil {
		src = source.Default()
	}
	logger := i.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var spec map[string]any
	if err := json.Unmarshal(jsonc.ToJSON([]byte(text)), &spec); err != nil {
		return "", &ParseError{Document: text, Err: err}
	}

	data, ok := spec["data"].(map[string]any)
	if !ok {
		return text, nil
	}
	rawURL, ok := data["url"].(string)
	if !ok {
		return text, nil
	}

	var content []byte
	if source.IsRemote(rawURL) {
		var err error
		content, err = src.Read(rawURL)
		if err != nil {
			// The server may be able to fetch it; leave the spec as
			// the author wrote it.
			logger.Warn("remote data.url failed, leaving specification unchanged", "url", rawURL, "error", err)
			return text, nil
		}
	} else {
		resolved := filepath.Join(dir, rawURL)
		if !src.Exists(resolved) {
			resolved = rawURL
		}
		var err error
		content, err = src.Read(resolved)
		if err != nil {
			return "", &source.ReadError{Path: resolved, Err: err}
		}
	}

	data["values"] = string(content)
	setFormat(data, rawURL)
	delete(data, "url")

	out, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("serializing Vega-Lite specification: %w", err)
	}
	return string(out), nil
}

// setFormat attaches a format.type inferred from the URL's file
// extension, unless the author already declared one.
func setFormat(data map[string]any, rawURL string) {
	format, _ := data["format"].(map[string]any)
	if format == nil {
		format = make(map[string]any)
	}
	if _, declared := format["type"]; declared {
		return
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(rawURL), "."))
	if !dataFormats[ext] {
		ext = "json"
	}
	format["type"] = ext
	data["format"] = format
}
