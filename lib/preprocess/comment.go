// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package preprocess

import "regexp"

// PlantUML comments use /' ... '/ pairs. A pair confined to one
// physical line is a line comment: the whole line goes, not just the
// commented span. Pairs spanning lines are block comments: the span
// (markers included) goes, the surrounding text stays. Line removal
// must run first — after span removal there is no pair left on the
// line to recognize.
var (
	lineCommentPattern  = regexp.MustCompile(`(?m)^[^\n]*/'[^\n]*?'/[^\n]*$\n?`)
	blockCommentPattern = regexp.MustCompile(`(?s)/'.*?'/`)
)

// stripComments removes every comment from text. Comment stripping
// happens once, globally, before any directive scanning: a directive
// written inside a comment is never seen.
func stripComments(text string) string {
	text = lineCommentPattern.ReplaceAllString(text, "")
	return blockCommentPattern.ReplaceAllString(text, "")
}
