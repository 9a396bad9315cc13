// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Engine ties the registry, queue, and dispatch loop into the recursive
// scan-and-carve run described in §4.5 and §5.
type Engine struct {
	registry    *Registry
	config      Config
	filter      *PathFilter
	logger      *slog.Logger
	stagingRoot string
	queue       *TaskQueue
	out         io.Writer
}

// NewEngine builds an Engine ready to Run once.
func NewEngine(registry *Registry, config Config, filter *PathFilter, logger *slog.Logger, stagingRoot string, out io.Writer) *Engine {
	return &Engine{
		registry:    registry,
		config:      config,
		filter:      filter,
		logger:      logger,
		stagingRoot: stagingRoot,
		queue:       NewTaskQueue(),
		out:         out,
	}
}

// Run enqueues the initial task, starts config.Threads workers, and blocks
// until the queue drains (§4.5 "driver waits for the queue's 'all tasks
// acknowledged' signal, then terminates workers"). It returns every
// FileResult produced, in completion order (§5: "across files, no ordering
// is guaranteed").
func (e *Engine) Run(initial Task) ([]FileResult, error) {
	if err := e.queue.Put(initial); err != nil {
		return nil, fmt.Errorf("enqueue initial task: %w", err)
	}

	resultCh := make(chan FileResult)
	var results []FileResult
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range resultCh {
			results = append(results, result)
			if err := emitJSONLine(e.out, result); err != nil {
				e.logger.Error("emit result", "path", result.FullFilename, "error", err)
			}
		}
	}()

	threads := e.config.Threads
	if threads < 1 {
		threads = 1
	}

	var group errgroup.Group
	for i := 0; i < threads; i++ {
		group.Go(func() error {
			return e.worker(resultCh)
		})
	}

	joinDone := make(chan struct{})
	go func() {
		e.queue.Join()
		close(joinDone)
	}()
	<-joinDone
	e.queue.Close()

	err := group.Wait()
	close(resultCh)
	<-collected

	if err != nil {
		return results, err
	}
	return results, nil
}

// worker implements the loop from §4.5: pull, process (§4.4/§4.6 flow),
// mark done.
func (e *Engine) worker(resultCh chan<- FileResult) error {
	for {
		task, ok := e.queue.Get()
		if !ok {
			return nil
		}

		result, skip := e.processTask(task)
		e.queue.TaskDone()

		if !skip {
			resultCh <- result
		}
	}
}

// processTask runs the classify -> hash -> scan/dispatch flow for one task
// and enqueues any produced children before returning, so that TaskDone is
// only called by the caller after every child Put has already landed (§4.5:
// a spurious early Join return would otherwise be possible).
func (e *Engine) processTask(task Task) (result FileResult, skip bool) {
	outcome, err := classify(task.Path)
	if err != nil {
		if errors.Is(err, errSkipDirectory) {
			return FileResult{}, true
		}
		// I/O error during stat: surfaced as a minimal FileResult (§7).
		return FileResult{
			FullFilename: task.Path,
			Filename:     e.relativePath(task.Path),
			Labels:       task.Labels,
		}, false
	}

	labels := NewLabels()
	labels.AddAll(task.Labels)
	labels.AddAll(outcome.Labels)

	result = outcome.Result
	result.FullFilename = task.Path
	result.Filename = e.relativePath(task.Path)
	result.Labels = labels

	if !outcome.NeedsScan {
		return result, false
	}

	digest, err := hashFile(task.Path)
	if err != nil {
		e.logger.Error("hash file", "path", task.Path, "error", err)
		return result, false
	}
	result.MD5 = digest.MD5
	result.SHA1 = digest.SHA1
	result.SHA256 = digest.SHA256

	dispatchRes, err := scanAndDispatch(e.registry, e.stagingRoot, task.Path, e.config.TemporaryDirectory, e.logger)
	if err != nil {
		e.logger.Error("scan file", "path", task.Path, "error", err)
		return result, false
	}

	labels.AddAll(dispatchRes.MergedLabels)
	labels.Add(dispatchRes.FinalProbeLabel)
	result.Labels = labels
	result.UnpackedFiles = dispatchRes.Reports

	for _, child := range dispatchRes.ChildTasks {
		if e.filter.Excluded(child.Path) {
			continue
		}
		if err := e.queue.Put(child); err != nil {
			e.logger.Error("enqueue child", "path", child.Path, "error", err)
		}
	}

	return result, false
}

// relativePath expresses path relative to the staging root for the manifest
// "filename" field (§3); it falls back to the absolute path if the relation
// cannot be computed (e.g. differing volumes).
func (e *Engine) relativePath(path string) string {
	rel, err := filepath.Rel(e.stagingRoot, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// WriteManifest writes every result as line-delimited JSON to path, the
// same shape streamed to stdout during the run, persisted under the
// staging root's results/ subtree for later inspection (§3 lifecycle:
// "retained after the run — they are the deliverable").
func WriteManifest(path string, results []FileResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	for _, result := range results {
		if err := emitJSONLine(f, result); err != nil {
			return err
		}
	}
	return nil
}

// emitJSONLine writes one FileResult as a single line-delimited JSON object
// to w (§6).
func emitJSONLine(w io.Writer, result FileResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result for %s: %w", result.FullFilename, err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
