// Copyright 2026 The Asciidoctor Kroki Authors
// SPDX-License-Identifier: MIT

package kroki

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// nameDigestLength is how many hex digits of the content hash appear
// in an output file name. 16 digits (64 bits) keeps names short while
// making collisions between distinct diagrams in one document tree
// implausible.
const nameDigestLength = 16

// OutputName derives a stable file name for a rendered diagram from
// its source text: typ-<digest>.<format>. The same source always maps
// to the same name, so re-rendering an unchanged diagram overwrites
// its previous output instead of accumulating files.
func OutputName(typ DiagramType, format OutputFormat, text string) string {
	digest := blake3.Sum256([]byte(text))
	return fmt.Sprintf("%s-%s.%s", typ, hex.EncodeToString(digest[:])[:nameDigestLength], format)
}
