// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

// Package builtin assembles carve's default signature set bound to the
// concrete handlers in the handlers package. It is kept separate from
// package carve so that the core package does not need to import handlers.
package builtin

import (
	"carve"
	"carve/handlers"
)

// BuiltinSignatures returns the default signature set bound to the
// concrete handlers in the handlers package (§4.1, §4.2).
func BuiltinSignatures() []carve.Signature {
	return []carve.Signature{
		{
			Key:         "gzip",
			Pattern:     []byte{0x1f, 0x8b},
			IntraOffset: 0,
			DisplayName: "gzip",
			Handler:     handlers.Gzip,
		},
		{
			Key:         "zlib-1",
			Pattern:     []byte{0x78, 0x9c},
			IntraOffset: 0,
			DisplayName: "zlib",
			Handler:     handlers.Zlib,
		},
		{
			Key:         "zlib-2",
			Pattern:     []byte{0x78, 0xda},
			IntraOffset: 0,
			DisplayName: "zlib",
			Handler:     handlers.Zlib,
		},
		{
			Key:         "lz4",
			Pattern:     []byte{0x04, 0x22, 0x4d, 0x18},
			IntraOffset: 0,
			DisplayName: "lz4",
			Handler:     handlers.LZ4,
		},
		{
			Key:         "zstd",
			Pattern:     []byte{0x28, 0xb5, 0x2f, 0xfd},
			IntraOffset: 0,
			DisplayName: "zstd",
			Handler:     handlers.Zstd,
		},
		{
			Key:         "lzss",
			Pattern:     []byte("LZS1"),
			IntraOffset: 0,
			DisplayName: "lzss",
			Handler:     handlers.LZSS,
		},
		{
			Key:         "tar",
			Pattern:     []byte("ustar"),
			IntraOffset: 0x101,
			DisplayName: "tar",
			Handler:     handlers.Tar,
		},
		{
			Key:         "png",
			Pattern:     []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a},
			IntraOffset: 0,
			DisplayName: "png",
			Handler:     handlers.PNG,
		},
		{
			Key:         "lzma-1",
			Pattern:     []byte{0x5d, 0x00, 0x00},
			IntraOffset: 0,
			DisplayName: "lzma",
			Handler:     handlers.LZMA,
		},
		{
			Key:         "lzma-2",
			Pattern:     []byte{0x5d, 0x00, 0x01},
			IntraOffset: 0,
			DisplayName: "lzma",
			Handler:     handlers.LZMA,
		},
		{
			Key:         "lzma-3",
			Pattern:     []byte{0x5d, 0x00, 0x10},
			IntraOffset: 0,
			DisplayName: "lzma",
			Handler:     handlers.LZMA,
		},
	}
}
