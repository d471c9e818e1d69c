// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package preprocess

import "strings"

// Kind identifies an include directive variant.
type Kind int

const (
	// KindInclude is the plain !include directive.
	KindInclude Kind = iota

	// KindIncludeMany is !include_many, which permits the same file
	// to appear multiple times.
	KindIncludeMany

	// KindIncludeOnce is !include_once; a second inclusion of the
	// same resolved path anywhere in the expansion is an error.
	KindIncludeOnce

	// KindIncludeURL is !includeurl, the historical remote form.
	KindIncludeURL

	// KindIncludeSub is !includesub, which addresses a named
	// !startsub/!endsub region of the referenced file.
	KindIncludeSub
)

func (k Kind) String() string {
	switch k {
	case KindInclude:
		return "include"
	case KindIncludeMany:
		return "include_many"
	case KindIncludeOnce:
		return "include_once"
	case KindIncludeURL:
		return "includeurl"
	case KindIncludeSub:
		return "includesub"
	default:
		return "unknown"
	}
}

// Directive is one parsed include line.
type Directive struct {
	// Kind is the directive variant.
	Kind Kind

	// Path is the reference with escaped spaces resolved, up to the
	// first "!" separator.
	Path string

	// SubSelector is the part of the reference after the first "!":
	// a !startsub name, a zero-based block index, or a block id.
	// Empty when the reference carries no selector.
	SubSelector string

	// Tail is any text on the line after the reference. It is
	// captured but not reparsed, and not carried into the output.
	Tail string

	// Raw is the original line, emitted verbatim when resolution is
	// soft-skipped.
	Raw string
}

// parseDirective attempts to parse line as an include directive.
// The grammar, anchored at line start with leading whitespace allowed:
//
//	! <keyword> <spaces> <reference> [<tail>]
//
// where <keyword> is one of the five kinds (case-insensitive) and
// <reference> runs to the first unescaped space; "\ " inside the
// reference is a literal space, not a separator.
func parseDirective(line string) (Directive, bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) || line[i] != '!' {
		return Directive{}, false
	}
	i++

	start := i
	for i < len(line) && (isKeywordByte(line[i])) {
		i++
	}
	kind, ok := parseKind(line[start:i])
	if !ok {
		return Directive{}, false
	}

	// At least one separating space before the reference.
	if i >= len(line) || (line[i] != ' ' && line[i] != '\t') {
		return Directive{}, false
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) {
		return Directive{}, false
	}

	var ref strings.Builder
	for i < len(line) {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == ' ' {
			ref.WriteByte(' ')
			i += 2
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			break
		}
		ref.WriteByte(c)
		i++
	}

	d := Directive{Kind: kind, Tail: line[i:], Raw: line}
	d.Path, d.SubSelector, _ = strings.Cut(ref.String(), "!")
	return d, true
}

func isKeywordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func parseKind(keyword string) (Kind, bool) {
	switch strings.ToLower(keyword) {
	case "include":
		return KindInclude, true
	case "include_many":
		return KindIncludeMany, true
	case "include_once":
		return KindIncludeOnce, true
	case "includeurl":
		return KindIncludeURL, true
	case "includesub":
		return KindIncludeSub, true
	default:
		return 0, false
	}
}

// isLibrary reports whether path references a library bundle
// (<aws/common>, <c4/C4_Context>, ...). Library references are never
// fetched; the renderer resolves them from its own standard library.
func isLibrary(path string) bool {
	return strings.HasPrefix(path, "<")
}
