// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// Package config provides configuration loading for Kroki tooling.
//
// Configuration is loaded from a single YAML file specified by:
//   - KROKI_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
// All fields have working defaults; an absent config file means the
// defaults apply.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for Kroki tooling.
type Config struct {
	// ServerURL is the Kroki server base URL.
	// Default: https://kroki.io
	ServerURL string `yaml:"server_url"`

	// TimeoutSeconds bounds each HTTP request to the server.
	// Default: 30
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Format is the default output format for rendered diagrams.
	// Default: svg
	Format string `yaml:"format"`

	// SafeMode disables remote include fetching during
	// preprocessing: remote references are left unresolved with a
	// warning. Default: false
	SafeMode bool `yaml:"safe_mode"`

	// DiagramTypes contains per-diagram-type overrides, keyed by
	// type name (plantuml, mermaid, ...).
	DiagramTypes map[string]TypeConfig `yaml:"diagram_types,omitempty"`
}

// TypeConfig contains fields that can be overridden per diagram type.
type TypeConfig struct {
	// Format overrides the default output format for this type.
	Format string `yaml:"format,omitempty"`
}

// Default returns the configuration used when no config file is
// supplied.
func Default() *Config {
	return &Config{
		ServerURL:      "https://kroki.io",
		TimeoutSeconds: 30,
		Format:         "svg",
	}
}

// Load reads the config file named by KROKI_CONFIG. The variable must
// be set; commands that accept --config resolve the flag themselves
// and call LoadFile directly.
func Load() (*Config, error) {
	path := os.Getenv("KROKI_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("KROKI_CONFIG environment variable not set")
	}
	return LoadFile(path)
}

// LoadFile reads and validates a YAML config file. Absent fields keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface as
// confusing HTTP errors later.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server_url must be an http(s) URL, got %q", c.ServerURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// FormatFor returns the output format for a diagram type, taking any
// per-type override into account.
func (c *Config) FormatFor(diagramType string) string {
	if override, ok := c.DiagramTypes[diagramType]; ok && override.Format != "" {
		return override.Format
	}
	return c.Format
}
