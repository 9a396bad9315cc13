// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import (
	"bytes"
	"sort"
)

// DefaultWindowSize is the sliding-window chunk size W (§4.3).
const DefaultWindowSize = 2 * 1024 * 1024

// Candidate is a (offset, signature) pair the scanner emits that might mark
// the start of a recognized format (GLOSSARY).
type Candidate struct {
	Offset       int64
	SignatureKey string
}

// findCandidatesInChunk searches chunk (read from the file at absolute
// position chunkOffset) for every registered pattern, at all non-overlapping
// positions, and returns every candidate that doesn't start before byte 0 of
// the file (§4.3).
func findCandidatesInChunk(chunk []byte, chunkOffset int64, signatures []Signature) []Candidate {
	var candidates []Candidate

	for _, sig := range signatures {
		pos := 0
		for {
			idx := bytes.Index(chunk[pos:], sig.Pattern)
			if idx < 0 {
				break
			}

			matchPos := pos + idx
			start := chunkOffset + int64(matchPos) - sig.IntraOffset
			if start >= 0 {
				candidates = append(candidates, Candidate{Offset: start, SignatureKey: sig.Key})
			}

			// Continue past this match; non-overlapping occurrences only (§4.3).
			pos = matchPos + len(sig.Pattern)
			if pos >= len(chunk) {
				break
			}
		}
	}

	return sortDedupCandidates(candidates)
}

// sortDedupCandidates sorts candidates ascending by offset, breaking ties by
// signature key lexicographically, and removes exact duplicates within the
// one chunk's candidate list (§4.3, §4.4 "Fairness of extraction"). It sees
// a single chunk at a time, so an anchor inside the overlap shared by two
// chunks is reported again with the next chunk.
func sortDedupCandidates(candidates []Candidate) []Candidate {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Offset != candidates[j].Offset {
			return candidates[i].Offset < candidates[j].Offset
		}
		return candidates[i].SignatureKey < candidates[j].SignatureKey
	})

	out := candidates[:0:0]
	for i, c := range candidates {
		if i > 0 && c == candidates[i-1] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// textProbe implements the streaming, latching text/binary detector (§4.3,
// §9): once a non-printable byte is observed the probe latches to binary and
// stops testing further chunks.
type textProbe struct {
	latched  bool
	isBinary bool
}

// Feed inspects chunk for a non-printable byte if the probe hasn't latched yet.
func (p *textProbe) Feed(chunk []byte) {
	if p.latched {
		return
	}

	for _, b := range chunk {
		if !isPrintableByte(b) {
			p.isBinary = true
			p.latched = true
			return
		}
	}
}

// Label returns LabelText or LabelBinary for the final label set.
func (p *textProbe) Label() string {
	if p.isBinary {
		return LabelBinary
	}
	return LabelText
}

// isPrintableByte reports whether b is a printable ASCII byte or common
// textual whitespace (tab, newline, carriage return).
func isPrintableByte(b byte) bool {
	switch b {
	case '\t', '\n', '\r':
		return true
	}
	return b >= 0x20 && b < 0x7f
}
