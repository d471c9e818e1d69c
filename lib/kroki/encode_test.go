// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package kroki

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sources := []string{
		"@startuml\nalice -> bob\n@enduml",
		"",
		"digraph G { a -> b }",
		strings.Repeat("participant p\n", 500),
	}
	for _, text := range sources {
		encoded, err := Encode(text)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		// URL-safe alphabet only: the payload goes into a URL path.
		if strings.ContainsAny(encoded, "+/") {
			t.Errorf("Encode produced non-URL-safe characters: %q", encoded)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if decoded != text {
			t.Errorf("round trip mismatch: got %q, want %q", decoded, text)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode("!!!not base64!!!"); err == nil {
		t.Error("Decode of invalid base64 succeeded")
	}
	// Valid base64, but not a zlib stream.
	if _, err := Decode("aGVsbG8="); err == nil {
		t.Error("Decode of a non-zlib payload succeeded")
	}
}

func TestDiagramURL(t *testing.T) {
	c := NewClient("https://kroki.example/")
	u, err := c.DiagramURL(PlantUML, SVG, "@startuml\na -> b\n@enduml")
	if err != nil {
		t.Fatalf("DiagramURL: %v", err)
	}
	if !strings.HasPrefix(u, "https://kroki.example/plantuml/svg/") {
		t.Errorf("DiagramURL = %q, want prefix %q", u, "https://kroki.example/plantuml/svg/")
	}
}

func TestOutputName(t *testing.T) {
	a := OutputName(PlantUML, SVG, "@startuml\na -> b\n@enduml")
	b := OutputName(PlantUML, SVG, "@startuml\na -> b\n@enduml")
	if a != b {
		t.Errorf("same source produced different names: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "plantuml-") || !strings.HasSuffix(a, ".svg") {
		t.Errorf("OutputName = %q, want plantuml-<digest>.svg", a)
	}

	c := OutputName(PlantUML, SVG, "@startuml\nb -> a\n@enduml")
	if a == c {
		t.Error("different sources produced the same name")
	}
}
