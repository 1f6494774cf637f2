// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

// Arena is the page-grant primitive the core allocator builds on: it
// can only extend the heap by appending bytes at its tail. The
// allocator never maps, unmaps, or otherwise manages memory origin
// itself — that bookkeeping belongs to the Arena implementation (see
// internal/arena for the mmap-backed one).
type Arena interface {
	// Extend appends n freshly-appended bytes to the tail of the heap
	// and returns the address of the first appended byte. The
	// returned address must equal the address immediately following
	// the last byte handed out by the previous Extend call (or, for
	// the first call, the arena's base address), so the heap stays
	// one contiguous region. Extend fails when the arena is
	// exhausted.
	Extend(n int) (uintptr, error)
}
