// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import "testing"

func TestNewRegistryComputesOverlap(t *testing.T) {
	t.Parallel()

	sigs := []Signature{
		{Key: "a", Pattern: []byte("ab"), IntraOffset: 0, DisplayName: "a", Handler: UnpackerFunc(nil)},
		{Key: "b", Pattern: []byte("ustar"), IntraOffset: 0x101, DisplayName: "b", Handler: UnpackerFunc(nil)},
	}

	r, err := NewRegistry(sigs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if got, want := r.MaxPatternLen(), 5; got != want {
		t.Fatalf("MaxPatternLen()=%d, want %d", got, want)
	}

	// max_intra_offset = max(intra_offset) + max_pattern_len (§4.1).
	if got, want := r.MaxIntraOffset(), int64(0x101+5); got != want {
		t.Fatalf("MaxIntraOffset()=%d, want %d", got, want)
	}
}

func TestNewRegistryRejectsBadInput(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		sigs []Signature
	}{
		{
			name: "empty pattern",
			sigs: []Signature{{Key: "x", Pattern: nil, Handler: UnpackerFunc(nil)}},
		},
		{
			name: "pattern too long",
			sigs: []Signature{{Key: "x", Pattern: make([]byte, 17), Handler: UnpackerFunc(nil)}},
		},
		{
			name: "duplicate key",
			sigs: []Signature{
				{Key: "x", Pattern: []byte("a"), Handler: UnpackerFunc(nil)},
				{Key: "x", Pattern: []byte("b"), Handler: UnpackerFunc(nil)},
			},
		},
		{
			name: "nil handler",
			sigs: []Signature{{Key: "x", Pattern: []byte("a")}},
		},
	}

	for _, tc := range testCases {
		if _, err := NewRegistry(tc.sigs); err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry([]Signature{
		{Key: "gzip", Pattern: []byte{0x1f, 0x8b}, DisplayName: "gzip", Handler: UnpackerFunc(nil)},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, ok := r.Lookup("gzip"); !ok {
		t.Fatal("Lookup(gzip) = not found, want found")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) = found, want not found")
	}
	if len(r.Signatures()) != 1 {
		t.Fatalf("Signatures() returned %d entries, want 1", len(r.Signatures()))
	}
}
