// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// Package fence rewrites fenced code blocks inside Markdown documents.
// It exists so diagram sources embedded in Markdown (```plantuml,
// ```mermaid, ...) can be preprocessed in place — include expansion,
// data inlining — before the document reaches a renderer.
//
// Only fence bodies change; everything else in the document, fences
// and info strings included, is emitted byte-for-byte.
package fence

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TransformFunc rewrites the body of one fenced code block. language
// is the fence's info-string language; body is the block content
// exactly as it appears in the source, trailing newline included.
type TransformFunc func(language, body string) (string, error)

// edit is one pending body replacement, by source byte range.
type edit struct {
	start, stop int
	replacement string
}

// Transform parses doc as Markdown and applies transform to the body
// of every fenced code block whose language is in languages. Blocks
// with other languages, or with no info string, pass through
// untouched. The first transform error aborts the whole rewrite.
func Transform(doc []byte, languages map[string]bool, transform TransformFunc) ([]byte, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	var edits []edit
	walkErr := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		language := string(block.Language(doc))
		if !languages[language] {
			return ast.WalkContinue, nil
		}
		lines := block.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		start := lines.At(0).Start
		stop := lines.At(lines.Len() - 1).Stop
		body := string(doc[start:stop])

		rewritten, err := transform(language, body)
		if err != nil {
			return ast.WalkStop, err
		}
		// Keep the closing fence on its own line.
		if rewritten != "" && !strings.HasSuffix(rewritten, "\n") {
			rewritten += "\n"
		}
		edits = append(edits, edit{start: start, stop: stop, replacement: rewritten})
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if len(edits) == 0 {
		return doc, nil
	}

	// Walk order is document order, so edits are already ascending
	// and non-overlapping.
	var out bytes.Buffer
	last := 0
	for _, e := range edits {
		out.Write(doc[last:e.start])
		out.WriteString(e.replacement)
		last = e.stop
	}
	out.Write(doc[last:])
	return out.Bytes(), nil
}
