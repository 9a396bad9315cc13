// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"fmt"
	"image/png"

	"carve"
)

// PNG validates a PNG stream starting at the candidate offset using stdlib
// image/png as a whole-file verifier: it decodes the image and reports the
// number of bytes consumed, but produces no child files. No ecosystem PNG
// decoder appears anywhere in the retrieved pack.
var PNG = carve.UnpackerFunc(unpackPNG)

func unpackPNG(inputPath string, offset int64, _, _ string) carve.UnpackVerdict {
	f, err := openAt(inputPath, offset)
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = f.Close() }()

	counter := &countingReader{r: f}
	if _, err := png.Decode(counter); err != nil {
		return carve.Fail(offset, fmt.Sprintf("invalid png stream: %v", err), false)
	}

	return carve.Succeed(counter.n, nil, carve.NewLabels("image"))
}
