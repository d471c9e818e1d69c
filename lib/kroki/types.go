// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// Package kroki talks to a Kroki diagram rendering server. It encodes
// diagram sources into the server's URL format (deflate + base64-url),
// fetches rendered output over HTTP, and names output files by content
// hash so unchanged diagrams map to unchanged files.
package kroki

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DiagramType identifies a diagram language understood by Kroki.
type DiagramType string

const (
	ActDiag     DiagramType = "actdiag"
	BlockDiag   DiagramType = "blockdiag"
	BPMN        DiagramType = "bpmn"
	Bytefield   DiagramType = "bytefield"
	C4PlantUML  DiagramType = "c4plantuml"
	Ditaa       DiagramType = "ditaa"
	ERD         DiagramType = "erd"
	Excalidraw  DiagramType = "excalidraw"
	GraphViz    DiagramType = "graphviz"
	Mermaid     DiagramType = "mermaid"
	Nomnoml     DiagramType = "nomnoml"
	NwDiag      DiagramType = "nwdiag"
	PacketDiag  DiagramType = "packetdiag"
	Pikchr      DiagramType = "pikchr"
	PlantUML    DiagramType = "plantuml"
	RackDiag    DiagramType = "rackdiag"
	SeqDiag     DiagramType = "seqdiag"
	Structurizr DiagramType = "structurizr"
	Svgbob      DiagramType = "svgbob"
	Vega        DiagramType = "vega"
	VegaLite    DiagramType = "vegalite"
	WaveDrom    DiagramType = "wavedrom"
)

// OutputFormat identifies a rendered output format.
type OutputFormat string

const (
	SVG    OutputFormat = "svg"
	PNG    OutputFormat = "png"
	PDF    OutputFormat = "pdf"
	JPEG   OutputFormat = "jpeg"
	TXT    OutputFormat = "txt"
	Base64 OutputFormat = "base64"
)

// supportedFormats lists the output formats each diagram type can
// render to. Types absent from the map render to SVG only.
var supportedFormats = map[DiagramType][]OutputFormat{
	BlockDiag:  {PNG, SVG, PDF},
	ActDiag:    {PNG, SVG, PDF},
	NwDiag:     {PNG, SVG, PDF},
	PacketDiag: {PNG, SVG, PDF},
	RackDiag:   {PNG, SVG, PDF},
	SeqDiag:    {PNG, SVG, PDF},
	Ditaa:      {PNG, SVG},
	ERD:        {PNG, SVG, PDF, JPEG},
	GraphViz:   {PNG, SVG, PDF, JPEG},
	Mermaid:    {PNG, SVG},
	PlantUML:   {PNG, SVG, PDF, TXT, Base64},
	C4PlantUML: {PNG, SVG, PDF, TXT, Base64},
	Vega:       {PNG, SVG, PDF},
	VegaLite:   {PNG, SVG, PDF},
}

// Supports reports whether typ can render to format.
func (typ DiagramType) Supports(format OutputFormat) bool {
	formats, ok := supportedFormats[typ]
	if !ok {
		return format == SVG
	}
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// typeByExtension maps source file extensions to diagram types, for
// callers that infer the type from a file name.
var typeByExtension = map[string]DiagramType{
	".bpmn":       BPMN,
	".ditaa":      Ditaa,
	".dot":        GraphViz,
	".er":         ERD,
	".excalidraw": Excalidraw,
	".gv":         GraphViz,
	".mmd":        Mermaid,
	".nomnoml":    Nomnoml,
	".pikchr":     Pikchr,
	".plantuml":   PlantUML,
	".puml":       PlantUML,
	".svgbob":     Svgbob,
	".uml":        PlantUML,
	".vg":         Vega,
	".vl":         VegaLite,
	".wavedrom":   WaveDrom,
}

// DetectType infers the diagram type from a source file name.
func DetectType(path string) (DiagramType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if typ, ok := typeByExtension[ext]; ok {
		return typ, nil
	}
	return "", fmt.Errorf("cannot infer diagram type from %q (unknown extension %q)", path, ext)
}

// ParseType validates a diagram type name supplied by the user.
func ParseType(name string) (DiagramType, error) {
	typ := DiagramType(strings.ToLower(name))
	switch typ {
	case ActDiag, BlockDiag, BPMN, Bytefield, C4PlantUML, Ditaa, ERD,
		Excalidraw, GraphViz, Mermaid, Nomnoml, NwDiag, PacketDiag,
		Pikchr, PlantUML, RackDiag, SeqDiag, Structurizr, Svgbob,
		Vega, VegaLite, WaveDrom:
		return typ, nil
	}
	return "", fmt.Errorf("unknown diagram type %q", name)
}

// Names returns the set of known diagram type names, for callers that
// match fenced-code-block languages against diagram languages.
func Names() map[string]bool {
	names := map[string]bool{
		string(Bytefield): true, string(BPMN): true,
		string(Excalidraw): true, string(Nomnoml): true,
		string(Pikchr): true, string(Structurizr): true,
		string(Svgbob): true, string(WaveDrom): true,
	}
	for typ := range supportedFormats {
		names[string(typ)] = true
	}
	return names
}
