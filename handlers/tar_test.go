// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package handlers

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestUnpackTarExtractsRegularFiles(t *testing.T) {
	t.Parallel()

	var archive bytes.Buffer
	tw := tar.NewWriter(&archive)
	files := map[string]string{
		"a.txt":     "contents of a",
		"sub/b.txt": "contents of b",
	}
	for name, contents := range files {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(contents)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("WriteHeader: %v", err)
		}
		if _, err := tw.Write([]byte(contents)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar.Close: %v", err)
	}

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input")
	if err := os.WriteFile(inputPath, archive.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	targetDir := t.TempDir()
	verdict := Tar.Unpack(inputPath, 0, targetDir, "")
	if !verdict.IsSuccess() {
		t.Fatalf("Unpack failed: %+v", verdict.Failure)
	}
	if len(verdict.Success.Produced) != len(files) {
		t.Fatalf("Produced=%v, want %d entries", verdict.Success.Produced, len(files))
	}

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(targetDir, filepath.FromSlash(name)))
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if string(got) != want {
			t.Fatalf("%s=%q, want %q", name, got, want)
		}
	}
}

func TestUnpackTarRejectsEmptyStream(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input")
	if err := os.WriteFile(inputPath, bytes.Repeat([]byte{0x00}, 1024), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	verdict := Tar.Unpack(inputPath, 0, t.TempDir(), "")
	if verdict.IsSuccess() {
		t.Fatal("Unpack succeeded on an all-zero stream, want failure")
	}
}
