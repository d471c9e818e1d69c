// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

// Package preprocess expands include directives inside PlantUML-family
// diagram sources before they are handed to a Kroki server.
//
// The engine strips comments, scans line by line for the five include
// directive kinds (!include, !include_many, !include_once, !includeurl,
// !includesub), resolves each reference through a source.Source,
// narrows the fetched content to the requested sub-block, and
// recursively re-expands the result relative to the included file's
// directory. Two traversal-scoped guards protect the recursion: an
// inclusion stack (cycle detection) and an include-once set
// (duplicate detection for !include_once).
//
// Remote read failures and library references (<aws/...>, <c4/...>)
// are soft: the directive is left verbatim in the output and a warning
// is logged, because the remote renderer can resolve those itself.
// Local read failures, cycles, and duplicate one-shot includes abort
// the whole expansion.
//
// The engine holds no state across calls; each Expand call owns a
// fresh stack and set, so independent expansions may run concurrently.
package preprocess
