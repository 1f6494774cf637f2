// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

// coalesce merges bp — whose header/footer are already marked free —
// with any free immediate neighbor. The prologue and epilogue
// sentinels are permanently allocated, so the prev/next allocation-bit
// probes below are always well-defined, even for the very first or
// very last real block.
func (a *Allocator) coalesce(bp uintptr) uintptr {
	prev := prevBlockAddr(bp)
	next := nextBlockAddr(bp)
	prevAlloc := blockAllocated(prev)
	nextAlloc := blockAllocated(next)
	size := blockSize(bp)

	switch {
	case prevAlloc && nextAlloc:
		a.addFree(bp)
		return bp

	case prevAlloc && !nextAlloc:
		size += blockSize(next)
		a.removeFree(next)
		setBlock(bp, size, 0)
		a.addFree(bp)
		return bp

	case !prevAlloc && nextAlloc:
		size += blockSize(prev)
		a.removeFree(prev)
		setBlock(prev, size, 0)
		a.addFree(prev)
		return prev

	default: // both free
		size += blockSize(prev) + blockSize(next)
		a.removeFree(prev)
		a.removeFree(next)
		setBlock(prev, size, 0)
		a.addFree(prev)
		return prev
	}
}
