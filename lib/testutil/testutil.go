// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// Package testutil provides shared test helpers for Kroki packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes files (relative path → content) under a fresh
// temporary directory and returns that directory. Parent directories
// are created as needed. The directory is removed when the test
// completes.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", full, err)
		}
	}
	return dir
}
