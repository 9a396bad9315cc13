// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"carve"
)

// Zstd decodes a zstd frame, grounded on bureau-foundation-bureau's
// artifact store zstd usage (lib/artifactstore/compress.go), generalized
// from its reused package-level Decoder to a per-call streaming reader
// since carved candidates arrive from arbitrary, concurrently-scanned
// offsets rather than one artifact store's serialized chunk pipeline.
var Zstd = carve.UnpackerFunc(unpackZstd)

func unpackZstd(inputPath string, offset int64, targetDir, _ string) carve.UnpackVerdict {
	f, err := openAt(inputPath, offset)
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = f.Close() }()

	counter := &countingReader{r: f}
	zr, err := zstd.NewReader(counter)
	if err != nil {
		return carve.Fail(offset, fmt.Sprintf("invalid zstd frame: %v", err), false)
	}
	defer zr.Close()

	name, err := writeProducedFile(targetDir, "decompressed", zr)
	if err != nil {
		return carve.Fail(offset, fmt.Sprintf("zstd stream corrupt: %v", err), false)
	}

	produced := []carve.ProducedFile{{Path: name, Labels: carve.NewLabels()}}
	return carve.Succeed(counter.n, produced, carve.NewLabels())
}
