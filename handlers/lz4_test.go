// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func TestUnpackLZ4ExtractsFrame(t *testing.T) {
	t.Parallel()

	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write([]byte("lz4 frame payload")); err != nil {
		t.Fatalf("lz4.Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("lz4.Close: %v", err)
	}

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input")
	if err := os.WriteFile(inputPath, compressed.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	targetDir := t.TempDir()
	verdict := LZ4.Unpack(inputPath, 0, targetDir, "")
	if !verdict.IsSuccess() {
		t.Fatalf("Unpack failed: %+v", verdict.Failure)
	}

	got, err := os.ReadFile(filepath.Join(targetDir, verdict.Success.Produced[0].Path))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "lz4 frame payload" {
		t.Fatalf("decompressed=%q, want %q", got, "lz4 frame payload")
	}
}

func TestUnpackLZ4RejectsGarbage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input")
	if err := os.WriteFile(inputPath, bytes.Repeat([]byte{0xFF}, 32), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	verdict := LZ4.Unpack(inputPath, 0, t.TempDir(), "")
	if verdict.IsSuccess() {
		t.Fatal("Unpack succeeded on non-LZ4 garbage, want failure")
	}
}
