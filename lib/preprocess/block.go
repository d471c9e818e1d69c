// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package preprocess

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Top-level diagram blocks are delimited by @start<word>/@end<word>
// pairs (@startuml/@enduml, @startditaa/@endditaa, ...), matched
// non-greedily across lines.
var blockPattern = regexp.MustCompile(`(?s)@start\w+\r?\n(.*?)\r?\n@end\w+`)

// extract narrows fetched content to the region addressed by the
// directive's sub-selector.
//
// Without a selector the content of the first top-level block is
// returned, or the whole text when no block markers exist (the whole
// file is one implicit block). With a selector, one of three
// addressing modes applies: !startsub name (for !includesub), a
// zero-based block index, or a named block id. Multi-match modes join
// the matched bodies with a single newline, in document order.
func extract(text string, d Directive) string {
	if d.SubSelector == "" {
		if m := blockPattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
		return text
	}

	if d.Kind == KindIncludeSub {
		return joinMatches(subBlockPattern(d.SubSelector), text)
	}

	if index, err := strconv.Atoi(d.SubSelector); err == nil {
		return blockAt(text, index)
	}

	return joinMatches(idBlockPattern(d.SubSelector), text)
}

// subBlockPattern matches a !startsub region carrying exactly name.
func subBlockPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?s)!startsub[ \t]+%s[ \t]*\r?\n(.*?)\r?\n[ \t]*!endsub`, regexp.QuoteMeta(name)))
}

// idBlockPattern matches a top-level block whose opening marker
// carries (id=<id>).
func idBlockPattern(id string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?s)@start\w+\(id=%s\)\r?\n(.*?)\r?\n@end\w+`, regexp.QuoteMeta(id)))
}

func joinMatches(pattern *regexp.Regexp, text string) string {
	var bodies []string
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		bodies = append(bodies, m[1])
	}
	return strings.Join(bodies, "\n")
}

// blockAt returns the content of the index-th top-level block,
// zero-based. An index past the last block yields the empty string;
// running out of blocks is deliberately lenient, not an error.
func blockAt(text string, index int) string {
	matches := blockPattern.FindAllStringSubmatch(text, -1)
	if index < 0 || index >= len(matches) {
		return ""
	}
	return matches[index][1]
}
