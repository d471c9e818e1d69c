// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// Package source provides content retrieval for diagram preprocessing.
//
// A Source answers two questions: does a reference exist, and what are
// its bytes. The preprocessing engine is agnostic to where content
// comes from; it hands every reference to a single Source. Two
// realizations are provided — FileSource for local paths and
// HTTPSource for remote URLs — plus Routed, which dispatches between
// them on URL shape. Callers that need finer control (in-memory
// fixtures, sandboxed roots) implement Source themselves.
package source

import (
	"fmt"
	"net/url"
	"os"
)

// Source is the content retrieval capability consumed by the
// preprocessing transforms.
type Source interface {
	// Exists reports whether path denotes readable content. Used to
	// probe candidate locations before committing to a read.
	Exists(path string) bool

	// Read returns the content at path. The error carries enough
	// context to identify the failing reference.
	Read(path string) ([]byte, error)
}

// ReadError indicates that a referenced local resource could not be
// read. Local read failures are always hard: the reference was meant
// to resolve here and nowhere else. (Remote failures are soft and
// never surface as ReadError — the remote renderer may resolve the
// reference itself.)
type ReadError struct {
	// Path is the resolved path that failed to read.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsRemote reports whether reference denotes a remote URL. A reference
// is remote when it parses as an absolute URL whose scheme is not
// file. Anything that does not parse as a URL (a bare relative path,
// most local paths) is local.
func IsRemote(reference string) bool {
	u, err := url.Parse(reference)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Scheme != "file"
}

// FileSource reads content from the local filesystem.
type FileSource struct{}

// Exists reports whether path names an existing file or directory.
func (FileSource) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Read returns the file content at path.
func (FileSource) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", path, err)
	}
	return data, nil
}

// Routed dispatches between a local and a remote Source on URL shape.
// This is the default wiring: remote references go over HTTP,
// everything else hits the filesystem.
type Routed struct {
	Local  Source
	Remote Source
}

// Exists dispatches to the matching source.
func (r Routed) Exists(path string) bool {
	if IsRemote(path) {
		return r.Remote.Exists(path)
	}
	return r.Local.Exists(path)
}

// Read dispatches to the matching source.
func (r Routed) Read(path string) ([]byte, error) {
	if IsRemote(path) {
		return r.Remote.Read(path)
	}
	return r.Local.Read(path)
}

// Default returns the standard wiring: local filesystem reads plus
// HTTP fetches with the default client configuration.
func Default() Source {
	return Routed{Local: FileSource{}, Remote: NewHTTPSource(nil)}
}
