// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/woozymasta/lzss"

	"carve"
)

// lzssMaxOutputSize bounds the decompressed size this handler will accept,
// since the carved container below carries no other limit on a corrupt or
// hostile input.
const lzssMaxOutputSize = 64 * 1024 * 1024

// LZSS decodes carve's own LZSS-wrapped stream container: a synthetic
// 4-byte magic ("LZS1", the bound Signature.Pattern) followed by a
// little-endian uint32 decompressed length and the raw LZSS stream.
// Real-world LZSS-compressed entries (as used inside PBO archives) carry
// no header magic of their own — WoozyMasta-pbo's reader is handed the
// expected output length out-of-band, from the archive's own entry table
// (entry_reader.go, streamDecompressEntry). A signature scanner has no
// such side channel, so this container format exists purely to give
// woozymasta/lzss a decodable, self-delimiting anchor to carve.
var LZSS = carve.UnpackerFunc(unpackLZSS)

func unpackLZSS(inputPath string, offset int64, targetDir, _ string) carve.UnpackVerdict {
	f, err := openAt(inputPath, offset)
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = f.Close() }()

	counter := &countingReader{r: f}

	var header [8]byte
	if _, err := io.ReadFull(counter, header[:]); err != nil {
		return carve.Fail(offset, fmt.Sprintf("read lzss container header: %v", err), false)
	}

	outLen := int(binary.LittleEndian.Uint32(header[4:8]))
	if outLen <= 0 || outLen > lzssMaxOutputSize {
		return carve.Fail(offset, fmt.Sprintf("lzss container declares invalid output size %d", outLen), false)
	}

	const name = "decompressed"
	out, err := os.Create(filepath.Join(targetDir, name))
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = out.Close() }()

	if _, err := lzss.DecompressToWriter(out, counter, outLen, nil); err != nil {
		return carve.Fail(offset, fmt.Sprintf("lzss stream corrupt: %v", err), false)
	}

	produced := []carve.ProducedFile{{Path: name, Labels: carve.NewLabels()}}
	return carve.Succeed(counter.n, produced, carve.NewLabels())
}
