// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "carve.ini")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfigRequiresBaseUnpackDirectory(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "[configuration]\nthreads = 2\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigMissingBaseDir) {
		t.Fatalf("LoadConfig err=%v, want ErrConfigMissingBaseDir", err)
	}
}

func TestLoadConfigRequiresConfigurationSection(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "[other]\nkey = 1\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigSectionMissing) {
		t.Fatalf("LoadConfig err=%v, want ErrConfigSectionMissing", err)
	}
}

func TestLoadConfigRejectsUnwritableBaseDir(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "[configuration]\nbaseunpackdirectory = /nonexistent/carve/base\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigBaseDirNotWritable) {
		t.Fatalf("LoadConfig err=%v, want ErrConfigBaseDirNotWritable", err)
	}
}

func TestLoadConfigRejectsNegativeThreads(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	path := writeConfigFile(t, "[configuration]\nbaseunpackdirectory = "+baseDir+"\nthreads = -1\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigInvalidThreads) {
		t.Fatalf("LoadConfig err=%v, want ErrConfigInvalidThreads", err)
	}
}

func TestLoadConfigValidMinimal(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	path := writeConfigFile(t, "[configuration]\nbaseunpackdirectory = "+baseDir+"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseUnpackDirectory != baseDir {
		t.Fatalf("BaseUnpackDirectory=%q, want %q", cfg.BaseUnpackDirectory, baseDir)
	}
	if cfg.Threads < 1 {
		t.Fatalf("Threads=%d, want >= 1 (0/absent clamps to CPU count)", cfg.Threads)
	}
}

func TestLoadConfigParsesFilters(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	path := writeConfigFile(t, "[configuration]\nbaseunpackdirectory = "+baseDir+
		"\n[filters]\nexclude = *.log, **/cache/**\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.ExcludeGlobs) != 2 {
		t.Fatalf("ExcludeGlobs=%v, want 2 entries", cfg.ExcludeGlobs)
	}
}

func TestClampThreads(t *testing.T) {
	t.Parallel()

	if got := clampThreads(0); got < 1 {
		t.Fatalf("clampThreads(0)=%d, want >= 1", got)
	}
	if got := clampThreads(-5); got < 1 {
		t.Fatalf("clampThreads(-5)=%d, want >= 1", got)
	}
	if got := clampThreads(1_000_000); got == 1_000_000 {
		t.Fatal("clampThreads did not clamp an oversized request to CPU count")
	}
}
