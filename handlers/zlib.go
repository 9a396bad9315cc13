// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"fmt"

	"github.com/klauspost/compress/zlib"

	"carve"
)

// Zlib decodes a zlib (RFC 1950) stream using klauspost/compress/zlib, a
// drop-in, faster replacement for stdlib compress/zlib that the rest of the
// retrieved pack already depends on for other formats.
var Zlib = carve.UnpackerFunc(unpackZlib)

func unpackZlib(inputPath string, offset int64, targetDir, _ string) carve.UnpackVerdict {
	f, err := openAt(inputPath, offset)
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = f.Close() }()

	counter := &countingReader{r: f}
	zr, err := zlib.NewReader(counter)
	if err != nil {
		return carve.Fail(offset, fmt.Sprintf("invalid zlib header: %v", err), false)
	}
	defer func() { _ = zr.Close() }()

	name, err := writeProducedFile(targetDir, "decompressed", zr)
	if err != nil {
		return carve.Fail(offset, fmt.Sprintf("zlib stream corrupt: %v", err), false)
	}

	produced := []carve.ProducedFile{{Path: name, Labels: carve.NewLabels()}}
	return carve.Succeed(counter.n, produced, carve.NewLabels())
}
