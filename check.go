// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import "github.com/sirupsen/logrus"

// Check runs six heap-invariant audits and returns true iff all pass.
// It stops at the first failure and logs a structured diagnostic
// describing which audit failed; the allocator never self-aborts on a
// failed check.
func (a *Allocator) Check() bool {
	audits := []struct {
		name string
		fn   func(*Allocator) (bool, string)
	}{
		{"free-list-blocks-are-free", (*Allocator).checkFreeListMarked},
		{"no-escaped-coalescing", (*Allocator).checkCoalescing},
		{"free-blocks-in-freelist", (*Allocator).checkFreeListMembership},
		{"no-overlap", (*Allocator).checkOverlap},
		{"valid-heap-addresses", (*Allocator).checkValidHeap},
		{"free-block-consistency", (*Allocator).checkFreeConsistency},
	}

	for _, audit := range audits {
		if ok, detail := audit.fn(a); !ok {
			a.log.WithFields(logrus.Fields{"audit": audit.name, "detail": detail}).Error("galloc: heap check failed")
			return false
		}
	}
	return true
}

// checkFreeListMarked verifies every block reachable from the
// free-list is actually marked free.
func (a *Allocator) checkFreeListMarked() (bool, string) {
	for bp := a.freeListHd; bp != 0; bp = a.nextFree(bp) {
		if blockAllocated(bp) {
			return false, "free-list block marked allocated"
		}
	}
	return true, ""
}

// checkCoalescing verifies no two adjacent real blocks are both free,
// walking the entire heap rather than sampling it.
func (a *Allocator) checkCoalescing() (bool, string) {
	for bp := a.heapBase; blockSize(bp) != 0; bp = nextBlockAddr(bp) {
		next := nextBlockAddr(bp)
		if blockSize(next) == 0 {
			break
		}
		if !blockAllocated(bp) && !blockAllocated(next) {
			return false, "adjacent free blocks escaped coalescing"
		}
	}
	return true, ""
}

// checkFreeListMembership verifies every free block in heap order is
// reachable from freeListHd.
func (a *Allocator) checkFreeListMembership() (bool, string) {
	for bp := a.heapBase; blockSize(bp) != 0; bp = nextBlockAddr(bp) {
		if blockAllocated(bp) {
			continue
		}
		found := false
		for f := a.freeListHd; f != 0; f = a.nextFree(f) {
			if f == bp {
				found = true
				break
			}
		}
		if !found {
			return false, "free block not reachable from free-list"
		}
	}
	return true, ""
}

// checkOverlap verifies allocated blocks never overlap their successor.
func (a *Allocator) checkOverlap() (bool, string) {
	for bp := a.heapBase; blockSize(bp) != 0; bp = nextBlockAddr(bp) {
		if !blockAllocated(bp) {
			continue
		}
		if headerAddr(bp)+uintptr(blockSize(bp)) > headerAddr(nextBlockAddr(bp)) {
			return false, "allocated block overlaps its successor"
		}
	}
	return true, ""
}

// checkValidHeap verifies every real block's header lies between the
// first real block's header and the epilogue (exclusive) and its
// payload address and size are both 8-byte aligned.
func (a *Allocator) checkValidHeap() (bool, string) {
	for bp := nextBlockAddr(a.heapBase); blockSize(bp) != 0; bp = nextBlockAddr(bp) {
		h := headerAddr(bp)
		if h < headerAddr(nextBlockAddr(a.heapBase)) || h >= a.epiloguePtr {
			return false, "block header outside valid heap range"
		}
		if bp&uintptr(alignment-1) != 0 {
			return false, "payload address not 8-byte aligned"
		}
		if blockSize(bp)&uint32(alignment-1) != 0 {
			return false, "block size not a multiple of 8"
		}
	}
	return true, ""
}

// checkFreeConsistency verifies every free block's header and footer
// agree it is unallocated.
func (a *Allocator) checkFreeConsistency() (bool, string) {
	for f := a.freeListHd; f != 0; f = a.nextFree(f) {
		hdr := readWord(headerAddr(f))
		ftr := readWord(footerAddr(f))
		if getAlloc(hdr) != 0 || getAlloc(ftr) != 0 {
			return false, "free block header/footer marked allocated"
		}
	}
	return true, ""
}
