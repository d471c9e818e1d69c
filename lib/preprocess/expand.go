// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package preprocess

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/anb0s/asciidoctor-kroki/lib/source"
)

// Expander expands include directives in diagram text. The zero value
// is usable: it reads through source.Default() and discards
// diagnostics.
type Expander struct {
	// Source supplies referenced content. Nil means source.Default().
	Source source.Source

	// Logger receives warnings for soft-skipped directives (library
	// references, failed remote reads). Nil discards them.
	Logger *slog.Logger

	// SafeMode disables remote fetching entirely: remote references
	// are soft-skipped with a warning instead of being read. Library
	// references and local reads are unaffected.
	SafeMode bool
}

// state is the traversal-scoped guard pair. A fresh state is allocated
// per top-level Expand call; nothing is shared across calls.
type state struct {
	// stack holds the paths currently being expanded, root first.
	// A candidate already present here is a cycle.
	stack []string

	// included holds every path included via !include_once so far.
	// A second occurrence is a duplicate, anywhere in the expansion.
	included map[string]bool
}

func (s *state) onPath(path string) bool {
	for _, p := range s.stack {
		if p == path {
			return true
		}
	}
	return false
}

// ExpandIncludes expands every include directive in text, reading
// referenced content from src (or source.Default() when src is nil).
// Relative references resolve against the current working directory.
func ExpandIncludes(text string, src source.Source) (string, error) {
	e := Expander{Source: src}
	return e.Expand(text, "")
}

// Expand returns text with every include directive recursively
// replaced by the referenced content. Relative references resolve
// against dir. The input is never mutated; on any hard failure
// (cycle, duplicate !include_once, unreadable local reference) no
// partial output is returned.
func (e *Expander) Expand(text, dir string) (string, error) {
	run := *e
	if run.Source == nil {
		run.Source = source.Default()
	}
	if run.Logger == nil {
		run.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return run.expand(text, dir, &state{included: make(map[string]bool)})
}

// expand is the recursive pipeline: strip comments, then scan line by
// line, replacing each directive line with its expansion.
func (e *Expander) expand(text, dir string, st *state) (string, error) {
	text = stripComments(text)
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		directive, ok := parseDirective(line)
		if !ok {
			out = append(out, line)
			continue
		}
		expanded, err := e.expandDirective(directive, dir, st)
		if err != nil {
			return "", err
		}
		out = append(out, expanded)
	}
	return strings.Join(out, "\n"), nil
}

// expandDirective resolves one directive to text and recursively
// expands the result against the resolved file's directory.
func (e *Expander) expandDirective(d Directive, dir string, st *state) (string, error) {
	res, err := e.resolve(d, dir, st)
	if err != nil {
		return "", err
	}

	if d.Kind == KindIncludeOnce && !res.skip {
		if st.included[res.path] {
			return "", &DuplicateIncludeError{Path: res.path}
		}
		st.included[res.path] = true
	}

	if res.skip {
		// Leave the directive verbatim for the renderer.
		return d.Raw, nil
	}

	body := extract(res.text, d)

	// Nested directives in the included content resolve against the
	// included file's own directory. The stack entry is popped on
	// every exit path so sibling directives see a clean stack even
	// when a nested branch fails.
	st.stack = append(st.stack, res.path)
	expanded, err := e.expand(body, filepath.Dir(res.path), st)
	st.stack = st.stack[:len(st.stack)-1]
	if err != nil {
		return "", err
	}
	return expanded, nil
}

// resolution is the outcome of resolving one reference. skip means
// the directive stays verbatim in the output.
type resolution struct {
	skip bool
	text string
	path string
}

// resolve turns a directive reference into content. Library
// references are never fetched; remote failures are soft; local
// failures are hard. The inclusion stack is consulted twice: once on
// the reference as written, and again after local path resolution.
func (e *Expander) resolve(d Directive, dir string, st *state) (resolution, error) {
	ref := d.Path

	if isLibrary(ref) {
		e.Logger.Warn("library reference left for the renderer", "reference", ref)
		return resolution{skip: true}, nil
	}

	if st.onPath(ref) {
		return resolution{}, &CycleError{Reference: ref}
	}

	if source.IsRemote(ref) {
		if e.SafeMode {
			e.Logger.Warn("safe mode: remote include not fetched", "url", ref)
			return resolution{skip: true}, nil
		}
		data, err := e.Source.Read(ref)
		if err != nil {
			e.Logger.Warn("remote include failed, leaving directive unresolved", "url", ref, "error", err)
			return resolution{skip: true}, nil
		}
		return resolution{text: string(data), path: ref}, nil
	}

	resolved := filepath.Join(dir, ref)
	if !e.Source.Exists(resolved) {
		// Absolute or pre-resolved reference.
		resolved = ref
	}
	if st.onPath(resolved) {
		return resolution{}, &CycleError{Reference: resolved}
	}
	data, err := e.Source.Read(resolved)
	if err != nil {
		return resolution{}, &source.ReadError{Path: resolved, Err: err}
	}
	return resolution{text: string(data), path: resolved}, nil
}
