// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StagingLayout holds the paths of one run's private output tree (§6,
// GLOSSARY "Staging root").
type StagingLayout struct {
	Root        string
	UnpackDir   string
	ResultsDir  string
	LogsDir     string
	InitialTask Task
}

// Bootstrap creates "bang-scan-<random>/{unpack,results,logs}" under
// baseDir, copies inputPath by basename into unpack/, and returns the
// resulting layout with the initial {root}-labeled task (§6).
//
// The random suffix comes from google/uuid rather than math/rand, matching
// bureau-foundation-bureau's use of uuid for unpredictable, collision-free
// identifiers.
func Bootstrap(baseDir, inputPath string) (StagingLayout, error) {
	root := filepath.Join(baseDir, "bang-scan-"+uuid.NewString())

	layout := StagingLayout{
		Root:       root,
		UnpackDir:  filepath.Join(root, "unpack"),
		ResultsDir: filepath.Join(root, "results"),
		LogsDir:    filepath.Join(root, "logs"),
	}

	for _, dir := range []string{layout.Root, layout.UnpackDir, layout.ResultsDir, layout.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return StagingLayout{}, fmt.Errorf("create staging directory %s: %w", dir, err)
		}
	}

	destPath := filepath.Join(layout.UnpackDir, filepath.Base(inputPath))
	if err := copyFile(inputPath, destPath); err != nil {
		return StagingLayout{}, fmt.Errorf("stage input file: %w", err)
	}

	layout.InitialTask = Task{Path: destPath, Labels: NewLabels(LabelRoot)}
	return layout, nil
}

// copyFile copies src to dst, preserving neither mode bits beyond the
// default nor timestamps — the staged copy is a working scratch file, not
// an archival replica.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, in)
	return err
}
