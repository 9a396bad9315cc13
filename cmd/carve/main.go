// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

// carve scans a file for embedded known formats, recursively extracting
// and rescanning everything it finds, and prints one JSON manifest entry
// per line as each file finishes.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"carve"
	"carve/builtin"
)

// exitError carries the process exit code alongside the message printed to
// stderr, mirroring bureau-foundation-bureau's cli.Validation-style
// exit-coded error values.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) ExitCode() int { return e.code }

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

func startupError(err error) error {
	return &exitError{code: 1, err: err}
}

func main() {
	if err := run(); err != nil {
		code := 1
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			code = coder.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "carve: %v\n", err)
		os.Exit(code)
	}
}

func run() error {
	var filePath, configPath string

	flagSet := pflag.NewFlagSet("carve", pflag.ContinueOnError)
	flagSet.StringVarP(&filePath, "file", "f", "", "file to scan (required)")
	flagSet.StringVarP(&configPath, "config", "c", "", "INI configuration file (required)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return usageError("%w", err)
	}

	if filePath == "" {
		return usageError("-f/--file is required")
	}
	if configPath == "" {
		return usageError("-c/--config is required")
	}

	inputInfo, err := os.Stat(filePath)
	if err != nil {
		return usageError("stat %s: %v", filePath, err)
	}
	if !inputInfo.Mode().IsRegular() {
		return usageError("%w: %s", carve.ErrInputNotRegularFile, filePath)
	}

	config, err := carve.LoadConfig(configPath)
	if err != nil {
		return usageError("%w", err)
	}

	layout, err := carve.Bootstrap(config.BaseUnpackDirectory, filePath)
	if err != nil {
		return startupError(err)
	}

	logFile, err := os.Create(filepath.Join(layout.LogsDir, "unpack.log"))
	if err != nil {
		return startupError(err)
	}
	defer func() { _ = logFile.Close() }()
	logger := carve.NewLogger(logFile)

	filter, err := carve.NewPathFilter(config.ExcludeGlobs)
	if err != nil {
		return usageError("%w", err)
	}

	registry, err := carve.NewRegistry(builtin.BuiltinSignatures())
	if err != nil {
		return startupError(err)
	}

	engine := carve.NewEngine(registry, config, filter, logger, layout.Root, os.Stdout)
	results, err := engine.Run(layout.InitialTask)
	if err != nil {
		logger.Error("run failed", "error", err)
		return startupError(err)
	}

	if err := carve.WriteManifest(filepath.Join(layout.ResultsDir, "manifest.jsonl"), results); err != nil {
		logger.Error("write manifest", "error", err)
	}

	return nil
}
