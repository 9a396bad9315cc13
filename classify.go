// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
)

// hashChunkSize is the read buffer size used while computing digests (§4.6).
const hashChunkSize = 10 * 1024 * 1024

// classifyOutcome is the result of the pre-scan short-circuit checks (§4.6).
type classifyOutcome struct {
	// Result is a partially populated FileResult; callers fill in
	// Filename/Labels before emitting it.
	Result FileResult
	// Labels contributed by the short-circuit (e.g. "symbolic link").
	Labels Labels
	// NeedsScan reports whether the sliding-window scan should run.
	NeedsScan bool
}

// classify performs the pre-scan short-circuit checks from §4.6: device,
// FIFO, symlink, and empty files stop here with a minimal result; anything
// else proceeds to hashing and then scanning.
func classify(path string) (classifyOutcome, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return classifyOutcome{}, fmt.Errorf("stat %s: %w", path, err)
	}

	mode := info.Mode()

	switch {
	case mode.IsDir():
		// Directories are skipped without reporting (§4.6); callers check this separately.
		return classifyOutcome{}, errSkipDirectory

	case mode&os.ModeSymlink != 0:
		return classifyOutcome{
			Labels: NewLabels(LabelSymbolicLink),
		}, nil

	case mode&os.ModeSocket != 0:
		return classifyOutcome{
			Labels: NewLabels(LabelSocket),
		}, nil

	case mode&os.ModeNamedPipe != 0:
		return classifyOutcome{
			Labels: NewLabels(LabelFIFO),
		}, nil

	case mode&os.ModeCharDevice != 0:
		return classifyOutcome{
			Labels: NewLabels(LabelCharacterDevice),
		}, nil

	case mode&os.ModeDevice != 0:
		return classifyOutcome{
			Labels: NewLabels(LabelBlockDevice),
		}, nil

	case info.Size() == 0:
		return classifyOutcome{
			Result: FileResult{FileSize: 0},
			Labels: NewLabels(LabelEmpty),
		}, nil
	}

	return classifyOutcome{NeedsScan: true, Result: FileResult{FileSize: info.Size()}}, nil
}

// errSkipDirectory signals the caller to drop the task silently (§4.6).
var errSkipDirectory = fmt.Errorf("carve: directory task skipped")

// digestSet holds the three lowercase hex digests required by §3/§4.6.
type digestSet struct {
	MD5    string
	SHA1   string
	SHA256 string
}

// hashFile computes MD5, SHA-1, and SHA-256 in a single streaming pass
// (§4.6, §9 "do not re-read the file per algorithm"), fanning one read out
// to three hash.Hash values via io.MultiWriter — the same single-pass
// approach WoozyMasta-pbo uses for its own signature hash (sign_hashset.go,
// computeSignHash1), generalized from one digest to three.
func hashFile(path string) (digestSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return digestSet{}, fmt.Errorf("open %s for hashing: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	md5Hash := md5.New()
	sha1Hash := sha1.New() //nolint:gosec // content-identification digest, not used for integrity guarantees.
	sha256Hash := sha256.New()

	writers := io.MultiWriter(md5Hash, sha1Hash, sha256Hash)

	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(writers, f, buf); err != nil {
		return digestSet{}, fmt.Errorf("hash %s: %w", path, err)
	}

	return digestSet{
		MD5:    hexSum(md5Hash),
		SHA1:   hexSum(sha1Hash),
		SHA256: hexSum(sha256Hash),
	}, nil
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
