// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/woozymasta/pathrules"
)

// PathFilter decides which staged paths get skipped for re-enqueueing,
// per the optional [filters] config section. Excluded files are still
// extracted and reported — they simply aren't scanned themselves.
//
// Repurposed from WoozyMasta-pbo's compression-rule matcher (which decided
// which archive entries get LZSS-compressed on write) to decide which
// staged files get rescanned on read.
type PathFilter struct {
	matcher *pathrules.Matcher
}

// NewPathFilter compiles a PathFilter from a set of glob patterns. A nil or
// empty PathFilter excludes nothing.
func NewPathFilter(globs []string) (*PathFilter, error) {
	if len(globs) == 0 {
		return &PathFilter{}, nil
	}

	rules := make([]pathrules.Rule, 0, len(globs))
	for _, glob := range globs {
		if _, err := path.Match(glob, ""); err != nil {
			return nil, fmt.Errorf("compile [filters] exclude pattern %q: %w", glob, err)
		}
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionInclude, Pattern: glob})
	}

	matcher, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{DefaultAction: pathrules.ActionExclude})
	if err != nil {
		return nil, fmt.Errorf("compile [filters] exclude patterns: %w", err)
	}

	return &PathFilter{matcher: matcher}, nil
}

// Excluded reports whether path matches one of the configured exclude globs
// and should therefore be skipped for recursive scanning.
func (f *PathFilter) Excluded(path string) bool {
	if f == nil || f.matcher == nil {
		return false
	}
	return f.matcher.Included(filepath.ToSlash(path), false)
}
