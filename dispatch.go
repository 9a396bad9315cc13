// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// dispatchResult is everything one file's scan-and-dispatch pass contributes
// back to the worker that drove it (§4.4).
type dispatchResult struct {
	Reports         []UnpackReport
	ChildTasks      []Task
	MergedLabels    Labels
	FinalProbeLabel string
}

// scanAndDispatch drives the sliding-window scan over filePath and, for each
// batch of candidates the scanner produces, carries out the dispatch
// algorithm from §4.4: drop already-carved or handler-less candidates,
// allocate an extraction directory, invoke the handler, clean up on
// failure, and record a report and child tasks on success.
func scanAndDispatch(registry *Registry, stagingRoot, filePath string, tempDir string, logger *slog.Logger) (dispatchResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return dispatchResult{}, fmt.Errorf("open %s for scanning: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return dispatchResult{}, fmt.Errorf("stat %s for scanning: %w", filePath, err)
	}
	fileSize := info.Size()

	overlap := registry.MaxIntraOffset()
	probe := &textProbe{}

	var (
		lastUnpackedOffset int64 = -1
		counters                 = map[string]int{}
		reports            []UnpackReport
		childTasks         []Task
		mergedLabels       = NewLabels()
	)

	pos := int64(0)
	for pos < fileSize {
		readLen := int64(DefaultWindowSize)
		if pos+readLen > fileSize {
			readLen = fileSize - pos
		}

		chunk := make([]byte, readLen)
		if _, err := f.ReadAt(chunk, pos); err != nil && !errors.Is(err, io.EOF) {
			return dispatchResult{}, fmt.Errorf("read %s at %d: %w", filePath, pos, err)
		}

		probe.Feed(chunk)

		candidates := findCandidatesInChunk(chunk, pos, registry.Signatures())
		for _, cand := range candidates {
			if cand.Offset < lastUnpackedOffset {
				continue
			}

			sig, ok := registry.Lookup(cand.SignatureKey)
			if !ok {
				continue
			}

			dirName, n, err := allocateExtractDir(filePath, sig.DisplayName, counters[sig.Key]+1)
			if err != nil {
				return dispatchResult{}, err
			}

			logTrying(logger, filePath, sig.Key, cand.Offset)
			verdict := sig.Handler.Unpack(filePath, cand.Offset, dirName, tempDir)

			if !verdict.IsSuccess() {
				reason := "handler rejected candidate"
				if verdict.Failure != nil && verdict.Failure.Reason != "" {
					reason = verdict.Failure.Reason
				}
				logFailure(logger, filePath, sig.Key, cand.Offset, reason)
				if verdict.Failure != nil && verdict.Failure.Fatal {
					logger.Warn("handler flagged failure as fatal; continuing with next candidate",
						"path", filePath, "signature", sig.Key, "offset", cand.Offset)
				}
				_ = cleanupFailedDir(dirName)
				continue
			}

			success := verdict.Success
			if success.ConsumedLength <= 0 {
				logFailure(logger, filePath, sig.Key, cand.Offset, ErrZeroLengthConsumption.Error())
				_ = cleanupFailedDir(dirName)
				continue
			}

			counters[sig.Key] = n

			used := map[string]struct{}{}
			fileRelPaths := make([]string, 0, len(success.Produced))
			for _, pf := range success.Produced {
				rel, err := finalizeProducedFile(dirName, pf.Path, used)
				if err != nil {
					logFailure(logger, filePath, sig.Key, cand.Offset,
						fmt.Sprintf("produced file %q: %v", pf.Path, err))
					continue
				}

				lbls := NewLabels()
				lbls.AddAll(pf.Labels)
				childTasks = append(childTasks, Task{
					Path:   filepath.Join(dirName, filepath.FromSlash(rel)),
					Labels: lbls,
				})
				fileRelPaths = append(fileRelPaths, rel)
			}

			logSuccess(logger, filePath, sig.Key, cand.Offset, success.ConsumedLength)

			wholeFile := cand.Offset == 0 && success.ConsumedLength == fileSize
			if wholeFile {
				mergedLabels.AddAll(success.NewLabels)
				if len(success.Produced) == 0 {
					_ = cleanupFailedDir(dirName)
				}
			}

			report := UnpackReport{
				Offset:    cand.Offset,
				Signature: sig.Key,
				Type:      sig.DisplayName,
				Size:      success.ConsumedLength,
				Files:     fileRelPaths,
			}
			if len(fileRelPaths) > 0 {
				if rel, err := filepath.Rel(stagingRoot, dirName); err == nil {
					report.UnpackDirectory = filepath.ToSlash(rel)
				}
			}
			reports = append(reports, report)

			lastUnpackedOffset = cand.Offset + success.ConsumedLength
		}

		chunkEnd := pos + int64(len(chunk))
		if chunkEnd >= fileSize {
			break
		}

		if lastUnpackedOffset > chunkEnd {
			pos = lastUnpackedOffset
		} else {
			pos = chunkEnd - overlap
			if pos < 0 {
				pos = 0
			}
		}
	}

	return dispatchResult{
		Reports:         reports,
		ChildTasks:      childTasks,
		MergedLabels:    mergedLabels,
		FinalProbeLabel: probe.Label(),
	}, nil
}

// allocateExtractDir allocates "<filePath>-<displayName>-<n>" starting at n,
// bumping n on EEXIST until mkdir succeeds (§4.4 step 3, §5 "Directory
// creation races ... resolved by filesystem EEXIST -> bump counter -> retry").
func allocateExtractDir(filePath, displayName string, start int) (dir string, n int, err error) {
	if start < 1 {
		start = 1
	}

	for n = start; ; n++ {
		dir = fmt.Sprintf("%s-%s-%d", filePath, displayName, n)
		err = os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, n, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", 0, fmt.Errorf("allocate extraction directory for %s: %w", filePath, err)
		}
	}
}

// cleanupFailedDir forcibly restores writable/executable mode on every
// non-symlink entry under dir, then removes it recursively (§4.4 step 5, §9
// "Cleanup on failure" — symlinks must never be chmoded, it would affect
// the target).
func cleanupFailedDir(dir string) error {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best-effort cleanup continues past unreadable entries.
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		_ = os.Chmod(path, 0o700)
		return nil
	})

	return os.RemoveAll(dir)
}

// finalizeProducedFile sanitizes a handler-reported produced-file path,
// deduplicates it against paths already claimed in this extraction, and
// renames the file on disk if sanitization changed it. Returns the path
// relative to dirName that the file now lives at.
func finalizeProducedFile(dirName, rawPath string, used map[string]struct{}) (string, error) {
	sanitized, err := sanitizeExtractedPath(rawPath, used)
	if err != nil {
		return "", err
	}

	srcRel := normalizeCarvePath(rawPath)
	if sanitized == srcRel {
		if _, err := os.Lstat(filepath.Join(dirName, filepath.FromSlash(sanitized))); err != nil {
			return "", fmt.Errorf("produced file missing at reported path: %w", err)
		}
		return sanitized, nil
	}

	src := filepath.Join(dirName, filepath.FromSlash(srcRel))
	dst := filepath.Join(dirName, filepath.FromSlash(sanitized))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("prepare extraction path: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("rename produced file: %w", err)
	}

	return sanitized, nil
}
