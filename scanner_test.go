// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import "testing"

func TestFindCandidatesInChunkBasic(t *testing.T) {
	t.Parallel()

	sigs := []Signature{
		{Key: "gzip", Pattern: []byte{0x1f, 0x8b}},
	}

	chunk := append(make([]byte, 16), 0x1f, 0x8b)
	chunk = append(chunk, make([]byte, 10)...)

	got := findCandidatesInChunk(chunk, 0, sigs)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if got[0].Offset != 16 || got[0].SignatureKey != "gzip" {
		t.Fatalf("got %+v, want {Offset:16 SignatureKey:gzip}", got[0])
	}
}

func TestFindCandidatesInChunkIntraOffsetRejectsNegative(t *testing.T) {
	t.Parallel()

	// Pattern matches at chunk-local position 2, intra-offset 5: 0+2-5 < 0,
	// so the candidate must be discarded (§4.3 "the purported format would
	// start before byte 0").
	sigs := []Signature{
		{Key: "s", Pattern: []byte{0xaa}, IntraOffset: 5},
	}
	chunk := []byte{0x00, 0x00, 0xaa, 0x00}

	got := findCandidatesInChunk(chunk, 0, sigs)
	if len(got) != 0 {
		t.Fatalf("got %d candidates, want 0: %+v", len(got), got)
	}
}

func TestFindCandidatesInChunkAppliesIntraOffset(t *testing.T) {
	t.Parallel()

	sigs := []Signature{
		{Key: "tar", Pattern: []byte("ustar"), IntraOffset: 0x101},
	}
	chunk := make([]byte, 0x101+5)
	copy(chunk[0x101:], "ustar")

	got := findCandidatesInChunk(chunk, 1000, sigs)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	if want := int64(1000); got[0].Offset != want {
		t.Fatalf("got offset %d, want %d", got[0].Offset, want)
	}
}

func TestFindCandidatesInChunkSortsByOffset(t *testing.T) {
	t.Parallel()

	sigs := []Signature{
		{Key: "b", Pattern: []byte{0x02}},
		{Key: "a", Pattern: []byte{0x01}},
	}
	chunk := []byte{0x01, 0x02}

	got := findCandidatesInChunk(chunk, 0, sigs)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].SignatureKey != "a" || got[1].SignatureKey != "b" {
		t.Fatalf("got %+v, want ascending offset order", got)
	}
}

func TestTextProbeLatchesOnFirstBinaryByte(t *testing.T) {
	t.Parallel()

	p := &textProbe{}
	p.Feed([]byte("hello world\n"))
	if p.Label() != LabelText {
		t.Fatalf("after printable chunk, Label()=%s, want %s", p.Label(), LabelText)
	}

	p.Feed([]byte{0x00, 0x01})
	if p.Label() != LabelBinary {
		t.Fatalf("after binary chunk, Label()=%s, want %s", p.Label(), LabelBinary)
	}

	// Latched: a later all-printable chunk must not unlatch it.
	p.Feed([]byte("more text"))
	if p.Label() != LabelBinary {
		t.Fatalf("after latch, Label()=%s, want %s", p.Label(), LabelBinary)
	}
}
