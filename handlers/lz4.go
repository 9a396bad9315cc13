// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"fmt"

	"github.com/pierrec/lz4/v4"

	"carve"
)

// LZ4 decodes an LZ4 frame using pierrec/lz4/v4's streaming Reader,
// grounded on bureau-foundation-bureau's use of the same library for its
// artifact store's block-mode compression (lib/artifactstore/compress.go),
// generalized here to the self-delimiting frame format.
var LZ4 = carve.UnpackerFunc(unpackLZ4)

func unpackLZ4(inputPath string, offset int64, targetDir, _ string) carve.UnpackVerdict {
	f, err := openAt(inputPath, offset)
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = f.Close() }()

	counter := &countingReader{r: f}
	zr := lz4.NewReader(counter)

	name, err := writeProducedFile(targetDir, "decompressed", zr)
	if err != nil {
		return carve.Fail(offset, fmt.Sprintf("lz4 frame corrupt: %v", err), false)
	}

	produced := []carve.ProducedFile{{Path: name, Labels: carve.NewLabels()}}
	return carve.Succeed(counter.n, produced, carve.NewLabels())
}
