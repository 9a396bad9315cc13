// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"fmt"
	"io"
	"log/slog"
)

// NewLogger builds the structured logger that writes logs/unpack.log
// inside the staging directory (§6), grounded on bureau-foundation-bureau's
// cmd/bureau-sandbox use of log/slog for a single text-handler sink.
func NewLogger(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}

// logTrying records an unpack attempt before the handler runs (§6).
func logTrying(logger *slog.Logger, path, signature string, offset int64) {
	logger.Info(fmt.Sprintf("TRYING %s %s at offset: %d", path, signature, offset))
}

// logSuccess records a successful unpack (§6).
func logSuccess(logger *slog.Logger, path, signature string, offset, length int64) {
	logger.Info(fmt.Sprintf("SUCCESS %s %s at offset: %d, length: %d", path, signature, offset, length))
}

// logFailure records a failed unpack attempt (§6).
func logFailure(logger *slog.Logger, path, signature string, offset int64, reason string) {
	logger.Info(fmt.Sprintf("FAIL %s %s at offset: %d: %s", path, signature, offset, reason))
}
