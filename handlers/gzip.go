// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"compress/gzip"
	"fmt"

	"carve"
)

// Gzip decodes a gzip stream starting at the candidate offset. No
// ecosystem gzip replacement appears anywhere in the retrieved pack, so
// this stays on stdlib compress/gzip (see DESIGN.md).
//
// consumed_length is the number of bytes the gzip reader pulled from the
// input before returning EOF on the decompressed stream; if further data
// immediately follows the gzip member in the same file, internal
// read-ahead buffering can overcount by up to one read's worth of bytes.
var Gzip = carve.UnpackerFunc(unpackGzip)

func unpackGzip(inputPath string, offset int64, targetDir, _ string) carve.UnpackVerdict {
	f, err := openAt(inputPath, offset)
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = f.Close() }()

	counter := &countingReader{r: f}
	gz, err := gzip.NewReader(counter)
	if err != nil {
		return carve.Fail(offset, fmt.Sprintf("invalid gzip header: %v", err), false)
	}
	gz.Multistream(false)

	name, err := writeProducedFile(targetDir, "decompressed", gz)
	if err != nil {
		return carve.Fail(offset, fmt.Sprintf("gzip stream corrupt: %v", err), false)
	}
	if err := gz.Close(); err != nil {
		return carve.Fail(offset, fmt.Sprintf("gzip trailer invalid: %v", err), false)
	}

	produced := []carve.ProducedFile{{Path: name, Labels: carve.NewLabels()}}
	return carve.Succeed(counter.n, produced, carve.NewLabels())
}
