// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

/*
Package carve implements a recursive binary-content identification and
extraction engine: a sliding-window signature scanner paired with a set of
format-specific unpackers, driven by a joinable work queue so that files
carved out of other files are themselves scanned and carved in turn.

# Running a scan

	registry, err := carve.NewRegistry(builtin.BuiltinSignatures())
	if err != nil {
		return err
	}
	cfg, err := carve.LoadConfig("carve.ini")
	if err != nil {
		return err
	}
	layout, err := carve.Bootstrap(cfg.BaseUnpackDirectory, "sample.bin")
	if err != nil {
		return err
	}
	filter, err := carve.NewPathFilter(cfg.ExcludeGlobs)
	if err != nil {
		return err
	}
	logger := carve.NewLogger(os.Stdout)
	engine := carve.NewEngine(registry, cfg, filter, logger, layout.Root, os.Stdout)
	results, err := engine.Run(layout.InitialTask)
	if err != nil {
		return err
	}
	return carve.WriteManifest(filepath.Join(layout.ResultsDir, "manifest.jsonl"), results)

Each scanned file is classified, hashed, and scanned for every registered
signature; each match is handed to its bound Unpacker, and any files it
produces are themselves enqueued for the same treatment. See the
handlers subpackage for the built-in format unpackers, the builtin
subpackage for the default signature set bound to them, and cmd/carve for a
standalone command-line driver.
*/
package carve
