// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// kroki-convert preprocesses a diagram source and renders it through
// a Kroki server.
//
// The input is either a bare diagram file (.puml, .mmd, .dot, ...) or
// a Markdown document with fenced diagram blocks. Include directives
// are expanded and Vega-Lite data.url references inlined before
// anything leaves the machine; the server only ever sees
// self-contained diagram text.
//
// Three output modes:
//
//	kroki-convert diagram.puml                 render, write a content-hash-named file
//	kroki-convert --expand-only diagram.puml   print the preprocessed source
//	kroki-convert --url-only diagram.puml      print the server GET URL
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/anb0s/asciidoctor-kroki/lib/config"
	"github.com/anb0s/asciidoctor-kroki/lib/fence"
	"github.com/anb0s/asciidoctor-kroki/lib/kroki"
	"github.com/anb0s/asciidoctor-kroki/lib/preprocess"
	"github.com/anb0s/asciidoctor-kroki/lib/vega"
	"github.com/anb0s/asciidoctor-kroki/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		serverURL  string
		typeName   string
		formatName string
		outPath    string
		expandOnly bool
		urlOnly    bool
		safeMode   bool
	)

	flagSet := pflag.NewFlagSet("kroki-convert", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $KROKI_CONFIG if set)")
	flagSet.StringVar(&serverURL, "server", "", "Kroki server base URL (overrides config)")
	flagSet.StringVar(&typeName, "type", "", "diagram type (default: inferred from the input extension)")
	flagSet.StringVar(&formatName, "format", "", "output format: svg, png, pdf, ... (overrides config)")
	flagSet.StringVarP(&outPath, "out", "o", "", "output file (default: content-hash name for renders, stdout otherwise)")
	flagSet.BoolVar(&expandOnly, "expand-only", false, "print the preprocessed diagram source and exit")
	flagSet.BoolVar(&urlOnly, "url-only", false, "print the server GET URL and exit")
	flagSet.BoolVar(&safeMode, "safe", false, "never fetch remote includes (overrides config)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing, like the other binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("kroki-convert")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprintf(os.Stderr, "usage: kroki-convert [flags] <input-file>\n\n%s", flagSet.FlagUsages())
		return nil
	}

	args := flagSet.Args()
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one input file, got %d arguments", len(args))
	}
	inputPath := args[0]

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if formatName != "" {
		cfg.Format = formatName
	}
	if safeMode {
		cfg.SafeMode = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	expander := preprocess.Expander{Logger: logger, SafeMode: cfg.SafeMode}
	inliner := vega.Inliner{Logger: logger}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	baseDir := filepath.Dir(inputPath)

	if isMarkdown(inputPath) {
		return convertMarkdown(input, baseDir, outPath, &expander, &inliner)
	}

	diagramType, err := resolveType(typeName, inputPath)
	if err != nil {
		return err
	}

	text, err := expander.Expand(string(input), baseDir)
	if err != nil {
		return err
	}
	if diagramType == kroki.VegaLite || diagramType == kroki.Vega {
		text, err = inliner.InlineData(text, baseDir)
		if err != nil {
			return err
		}
	}

	if expandOnly {
		return writeOutput(outPath, []byte(text))
	}

	format := kroki.OutputFormat(cfg.FormatFor(string(diagramType)))
	if !diagramType.Supports(format) {
		return fmt.Errorf("diagram type %s cannot render to %s", diagramType, format)
	}

	client := kroki.NewClient(cfg.ServerURL)
	client.HTTP = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}

	if urlOnly {
		u, err := client.DiagramURL(diagramType, format, text)
		if err != nil {
			return err
		}
		fmt.Println(u)
		return nil
	}

	rendered, err := client.Render(context.Background(), diagramType, format, text)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = kroki.OutputName(diagramType, format, text)
	}
	if err := os.WriteFile(outPath, rendered, 0o644); err != nil {
		return fmt.Errorf("writing rendered diagram: %w", err)
	}
	fmt.Println(outPath)
	return nil
}

// convertMarkdown preprocesses every fenced diagram block in place
// and emits the rewritten document. Rendering is left to whatever
// consumes the Markdown; only the diagram sources are transformed.
func convertMarkdown(doc []byte, baseDir, outPath string, expander *preprocess.Expander, inliner *vega.Inliner) error {
	rewritten, err := fence.Transform(doc, kroki.Names(), func(language, body string) (string, error) {
		expanded, err := expander.Expand(body, baseDir)
		if err != nil {
			return "", err
		}
		if language == string(kroki.VegaLite) || language == string(kroki.Vega) {
			return inliner.InlineData(expanded, baseDir)
		}
		return expanded, nil
	})
	if err != nil {
		return err
	}
	return writeOutput(outPath, rewritten)
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	if os.Getenv("KROKI_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

func resolveType(typeName, inputPath string) (kroki.DiagramType, error) {
	if typeName != "" {
		return kroki.ParseType(typeName)
	}
	return kroki.DetectType(inputPath)
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func writeOutput(outPath string, data []byte) error {
	if outPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
