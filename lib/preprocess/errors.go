// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package preprocess

import "fmt"

// CycleError indicates that a reference is already on the active
// inclusion path: following it would recurse forever.
type CycleError struct {
	// Reference is the offending reference, either as written or
	// after path resolution (the stack is checked at both points).
	Reference string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("include cycle: %q is already being included", e.Reference)
}

// DuplicateIncludeError indicates that an !include_once reference was
// already included earlier in the same expansion.
type DuplicateIncludeError struct {
	// Path is the resolved path of the duplicate inclusion.
	Path string
}

func (e *DuplicateIncludeError) Error() string {
	return fmt.Sprintf("duplicate include: %q was already included with include_once", e.Path)
}
