// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"carve"
)

// Tar unpacks entries from a POSIX ustar stream starting at the candidate
// offset (the stream's "ustar" magic sits at intra-offset 0x101, bound in
// the registry, not re-checked here), using stdlib archive/tar — no
// ecosystem tar replacement appears anywhere in the retrieved pack.
var Tar = carve.UnpackerFunc(unpackTar)

func unpackTar(inputPath string, offset int64, targetDir, _ string) carve.UnpackVerdict {
	f, err := openAt(inputPath, offset)
	if err != nil {
		return carve.Fail(offset, err.Error(), false)
	}
	defer func() { _ = f.Close() }()

	counter := &countingReader{r: f}
	tr := tar.NewReader(counter)

	var produced []carve.ProducedFile
	entries := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(produced) == 0 {
				return carve.Fail(offset, fmt.Sprintf("invalid tar header: %v", err), false)
			}
			break
		}
		entries++

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.ToSlash(filepath.Clean(hdr.Name))
		dest := filepath.Join(targetDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return carve.Fail(offset, fmt.Sprintf("prepare tar entry %s: %v", hdr.Name, err), false)
		}

		out, err := os.Create(dest)
		if err != nil {
			return carve.Fail(offset, fmt.Sprintf("create tar entry %s: %v", hdr.Name, err), false)
		}
		if _, err := io.Copy(out, tr); err != nil {
			_ = out.Close()
			return carve.Fail(offset, fmt.Sprintf("extract tar entry %s: %v", hdr.Name, err), false)
		}
		_ = out.Close()

		produced = append(produced, carve.ProducedFile{Path: name, Labels: carve.NewLabels()})
	}

	if entries == 0 {
		return carve.Fail(offset, "empty tar stream", false)
	}

	return carve.Succeed(counter.n, produced, carve.NewLabels())
}
