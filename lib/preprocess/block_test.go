// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package preprocess

import "testing"

const threeBlocks = "@startuml\nfirst\n@enduml\n@startuml\nsecond\n@enduml\n@startuml\nthird\n@enduml\n"

func TestExtractWholeFile(t *testing.T) {
	// No block markers: the whole file is one implicit block.
	got := extract("hello", Directive{Kind: KindInclude})
	if got != "hello" {
		t.Errorf("extract = %q, want %q", got, "hello")
	}
}

func TestExtractFirstBlock(t *testing.T) {
	got := extract(threeBlocks, Directive{Kind: KindInclude})
	if got != "first" {
		t.Errorf("extract = %q, want %q", got, "first")
	}
}

func TestExtractBlockIndex(t *testing.T) {
	tests := []struct {
		selector string
		want     string
	}{
		{"0", "first"},
		{"1", "second"},
		{"2", "third"},
		{"3", ""}, // past the last block: lenient, empty
		{"99", ""},
	}
	for _, tt := range tests {
		d := Directive{Kind: KindInclude, SubSelector: tt.selector}
		if got := extract(threeBlocks, d); got != tt.want {
			t.Errorf("index %s: extract = %q, want %q", tt.selector, got, tt.want)
		}
	}
}

func TestExtractNamedSubBlocks(t *testing.T) {
	text := "@startuml\n" +
		"!startsub BASIC\nalice -> bob\n!endsub\n" +
		"carol -> dan\n" +
		"!startsub BASIC\nbob -> alice\n!endsub\n" +
		"!startsub OTHER\nnope\n!endsub\n" +
		"@enduml\n"

	d := Directive{Kind: KindIncludeSub, SubSelector: "BASIC"}
	want := "alice -> bob\nbob -> alice"
	if got := extract(text, d); got != want {
		t.Errorf("extract = %q, want %q", got, want)
	}

	d.SubSelector = "MISSING"
	if got := extract(text, d); got != "" {
		t.Errorf("extract of missing sub-block = %q, want empty", got)
	}
}

func TestExtractNamedBlockID(t *testing.T) {
	text := "@startuml(id=MAIN)\nalice -> bob\n@enduml\n" +
		"@startuml(id=SIDE)\ncarol -> dan\n@enduml\n" +
		"@startuml(id=MAIN)\nbob -> alice\n@enduml\n"

	d := Directive{Kind: KindInclude, SubSelector: "MAIN"}
	want := "alice -> bob\nbob -> alice"
	if got := extract(text, d); got != want {
		t.Errorf("extract = %q, want %q", got, want)
	}
}
