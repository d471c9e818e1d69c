// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ServerURL != "https://kroki.io" {
		t.Errorf("expected server_url=https://kroki.io, got %s", cfg.ServerURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("expected timeout_seconds=30, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Format != "svg" {
		t.Errorf("expected format=svg, got %s", cfg.Format)
	}
	if cfg.SafeMode {
		t.Error("expected safe_mode=false")
	}
}

func TestLoad_RequiresKrokiConfig(t *testing.T) {
	// Save and restore KROKI_CONFIG.
	origConfig := os.Getenv("KROKI_CONFIG")
	defer os.Setenv("KROKI_CONFIG", origConfig)

	os.Unsetenv("KROKI_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when KROKI_CONFIG not set, got nil")
	}
	if !strings.Contains(err.Error(), "KROKI_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "kroki.yaml")

	configContent := `
server_url: http://localhost:8000
safe_mode: true
diagram_types:
  plantuml:
    format: png
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("server_url = %s, want http://localhost:8000", cfg.ServerURL)
	}
	if !cfg.SafeMode {
		t.Error("safe_mode = false, want true")
	}

	// Absent fields keep their defaults.
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("timeout_seconds = %d, want default 30", cfg.TimeoutSeconds)
	}
	if cfg.Format != "svg" {
		t.Errorf("format = %s, want default svg", cfg.Format)
	}

	if got := cfg.FormatFor("plantuml"); got != "png" {
		t.Errorf("FormatFor(plantuml) = %s, want png", got)
	}
	if got := cfg.FormatFor("mermaid"); got != "svg" {
		t.Errorf("FormatFor(mermaid) = %s, want svg", got)
	}
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty server url",
			content: `server_url: ""`,
			wantErr: "server_url must not be empty",
		},
		{
			name:    "non-http server url",
			content: `server_url: kroki.io`,
			wantErr: "must be an http(s) URL",
		},
		{
			name:    "zero timeout",
			content: "timeout_seconds: 0",
			wantErr: "timeout_seconds must be positive",
		},
		{
			name:    "malformed yaml",
			content: "server_url: [broken",
			wantErr: "parsing config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "kroki.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
