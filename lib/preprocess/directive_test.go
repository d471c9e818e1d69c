// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package preprocess

import "testing"

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Directive
	}{
		{
			name: "plain include",
			line: "!include foo.puml",
			want: Directive{Kind: KindInclude, Path: "foo.puml"},
		},
		{
			name: "leading whitespace allowed",
			line: "  \t!include foo.puml",
			want: Directive{Kind: KindInclude, Path: "foo.puml"},
		},
		{
			name: "keyword is case-insensitive",
			line: "!INCLUDE_ONCE foo.puml",
			want: Directive{Kind: KindIncludeOnce, Path: "foo.puml"},
		},
		{
			name: "escaped space is part of the reference",
			line: `!include my\ diagrams/foo.puml`,
			want: Directive{Kind: KindInclude, Path: "my diagrams/foo.puml"},
		},
		{
			name: "sub-selector split on first bang",
			line: "!includesub common.puml!BASIC",
			want: Directive{Kind: KindIncludeSub, Path: "common.puml", SubSelector: "BASIC"},
		},
		{
			name: "numeric sub-selector",
			line: "!include blocks.puml!1",
			want: Directive{Kind: KindInclude, Path: "blocks.puml", SubSelector: "1"},
		},
		{
			name: "trailing tail captured",
			line: "!include foo.puml  some trailing text",
			want: Directive{Kind: KindInclude, Path: "foo.puml", Tail: "  some trailing text"},
		},
		{
			name: "includeurl",
			line: "!includeurl https://example.com/foo.puml",
			want: Directive{Kind: KindIncludeURL, Path: "https://example.com/foo.puml"},
		},
		{
			name: "include_many",
			line: "!include_many part.puml",
			want: Directive{Kind: KindIncludeMany, Path: "part.puml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDirective(tt.line)
			if !ok {
				t.Fatalf("parseDirective(%q) did not match", tt.line)
			}
			if got.Kind != tt.want.Kind {
				t.Errorf("kind = %s, want %s", got.Kind, tt.want.Kind)
			}
			if got.Path != tt.want.Path {
				t.Errorf("path = %q, want %q", got.Path, tt.want.Path)
			}
			if got.SubSelector != tt.want.SubSelector {
				t.Errorf("sub-selector = %q, want %q", got.SubSelector, tt.want.SubSelector)
			}
			if got.Tail != tt.want.Tail {
				t.Errorf("tail = %q, want %q", got.Tail, tt.want.Tail)
			}
			if got.Raw != tt.line {
				t.Errorf("raw = %q, want %q", got.Raw, tt.line)
			}
		})
	}
}

func TestParseDirectiveRejects(t *testing.T) {
	lines := []string{
		"",
		"alice -> bob",
		"include foo.puml",      // no bang
		"!includes foo.puml",    // unknown keyword
		"!include",              // no reference
		"!include   ",           // only spaces after keyword
		"!includefoo.puml",      // no separator before reference
		"note left: !include x", // not anchored at line start
	}
	for _, line := range lines {
		if d, ok := parseDirective(line); ok {
			t.Errorf("parseDirective(%q) matched as %s %q, want no match", line, d.Kind, d.Path)
		}
	}
}
