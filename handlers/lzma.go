// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import "carve"

// LZMA always fails validation. No LZMA decoder appears anywhere in the
// retrieved pack, and the three-byte properties prefix this handler is
// bound to (shared across several "dictionary size" signature variants,
// per the registry's display-name grouping) is common enough to produce
// frequent false positives on unrelated binary data — exactly the
// false-positive-before-real-match scenario this stub exists to exercise.
// A genuine decoder would replace this without changing the registry
// binding or the dispatch contract.
var LZMA = carve.UnpackerFunc(unpackLZMA)

func unpackLZMA(_ string, offset int64, _, _ string) carve.UnpackVerdict {
	return carve.Fail(offset, "lzma stream validation not implemented", false)
}
