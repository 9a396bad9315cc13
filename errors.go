// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pbo

package carve

import "errors"

// Sentinel errors for carve operations. Use errors.Is in callers.
var (
	// ErrConfigMissingBaseDir means baseunpackdirectory is absent from the config file.
	ErrConfigMissingBaseDir = errors.New("configuration: baseunpackdirectory is required")
	// ErrConfigBaseDirNotWritable means baseunpackdirectory does not exist, isn't a directory, or isn't writable.
	ErrConfigBaseDirNotWritable = errors.New("configuration: baseunpackdirectory must be an existing, writable directory")
	// ErrConfigInvalidThreads means the threads key is not a non-negative integer.
	ErrConfigInvalidThreads = errors.New("configuration: threads must be a non-negative integer")
	// ErrConfigSectionMissing means the [configuration] section is absent.
	ErrConfigSectionMissing = errors.New("configuration: [configuration] section is required")
	// ErrConfigNotRegularFile means the config path named by -c/--config is not a regular file.
	ErrConfigNotRegularFile = errors.New("configuration file must be a regular file")
	// ErrInputNotRegularFile means the path named by -f/--file is not a regular file.
	ErrInputNotRegularFile = errors.New("input file must be a regular file")
	// ErrInvalidExtractPath means a handler-produced path is invalid for the extraction destination.
	ErrInvalidExtractPath = errors.New("invalid extract path")
	// ErrExtractPathOutsideRoot means a resolved extraction path escapes its extraction directory.
	ErrExtractPathOutsideRoot = errors.New("extract path escapes extraction root")
	// ErrHandlerNotFound means no handler is registered for a signature; dispatch does not return it and drops such candidates silently.
	ErrHandlerNotFound = errors.New("no handler registered for signature")
	// ErrZeroLengthConsumption means a handler reported success with consumed_length == 0 (§9 open question 3).
	ErrZeroLengthConsumption = errors.New("handler reported zero-length consumption")
	// ErrQueueClosed means Put was called after the queue was closed.
	ErrQueueClosed = errors.New("queue is closed")
)
