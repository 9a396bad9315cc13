// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

// Package handlers provides the concrete Unpacker implementations bound to
// carve's built-in signature set. Each handler's parsing depth is
// intentionally shallow: it exists to exercise the dispatch contract and to
// give its backing library a real caller, not to be a complete decoder for
// its format.
package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// countingReader wraps an io.Reader and tracks how many bytes have been
// read from it, used to approximate consumed_length for streaming formats
// that have no explicit trailing length field the dispatcher can consult
// directly. A decoder's internal read-ahead buffering can make this an
// overestimate when more data follows the stream in the same file.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// openAt opens path and seeks to offset, returning a file positioned to
// read the candidate region. Handlers open their own handle rather than
// sharing one, consistent with the contract that they must not perturb
// state the dispatcher depends on.
func openAt(path string, offset int64) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("seek to offset %d: %w", offset, err)
	}
	return f, nil
}

// writeProducedFile writes data to name under targetDir and returns the
// produced file's directory-relative path.
func writeProducedFile(targetDir, name string, r io.Reader) (string, error) {
	out, err := os.Create(filepath.Join(targetDir, name))
	if err != nil {
		return "", err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, r); err != nil {
		return "", err
	}
	return name, nil
}
