// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

// Config is the parsed run configuration (§6).
type Config struct {
	// BaseUnpackDirectory is the parent of the staging root; must exist, be
	// a directory, and be writable.
	BaseUnpackDirectory string
	// TemporaryDirectory is passed through to unpackers for scratch space;
	// empty means the OS default.
	TemporaryDirectory string
	// Threads is the worker count, already clamped to [1, runtime.NumCPU()].
	Threads int
	// ExcludeGlobs holds the optional [filters] exclude patterns.
	ExcludeGlobs []string
}

// LoadConfig reads and validates an INI configuration file (§6).
func LoadConfig(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Config{}, ErrConfigNotRegularFile
	}

	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if !file.HasSection("configuration") {
		return Config{}, ErrConfigSectionMissing
	}
	section := file.Section("configuration")

	baseDir := strings.TrimSpace(section.Key("baseunpackdirectory").String())
	if baseDir == "" {
		return Config{}, ErrConfigMissingBaseDir
	}

	baseInfo, err := os.Stat(baseDir)
	if err != nil || !baseInfo.IsDir() {
		return Config{}, ErrConfigBaseDirNotWritable
	}
	if err := checkWritableDir(baseDir); err != nil {
		return Config{}, ErrConfigBaseDirNotWritable
	}

	cfg := Config{
		BaseUnpackDirectory: baseDir,
		TemporaryDirectory:  strings.TrimSpace(section.Key("temporarydirectory").String()),
	}

	threadsRaw := strings.TrimSpace(section.Key("threads").String())
	threads := 0
	if threadsRaw != "" {
		threads, err = section.Key("threads").Int()
		if err != nil || threads < 0 {
			return Config{}, ErrConfigInvalidThreads
		}
	}
	cfg.Threads = clampThreads(threads)

	if file.HasSection("filters") {
		excludeRaw := strings.TrimSpace(file.Section("filters").Key("exclude").String())
		cfg.ExcludeGlobs = splitGlobList(excludeRaw)
	}

	return cfg, nil
}

// clampThreads implements "0 or absent -> CPU count; configurable, clamped
// to CPU count" (§6, §4.5).
func clampThreads(requested int) int {
	cpuCount := runtime.NumCPU()
	if requested <= 0 || requested > cpuCount {
		return cpuCount
	}
	return requested
}

// splitGlobList parses a comma-separated glob list, trimming whitespace and
// dropping empty entries.
func splitGlobList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	globs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			globs = append(globs, part)
		}
	}
	return globs
}

// checkWritableDir probes writability by creating and removing a temp file,
// since os.Stat alone cannot tell a read-only mount from a writable one.
func checkWritableDir(dir string) error {
	probe, err := os.CreateTemp(dir, ".carve-writable-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
