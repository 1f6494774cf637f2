// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

// Free-list: a doubly-linked, LIFO-ordered list threaded through the
// first two payload words of every free block. Links are stored as
// 4-byte offsets relative to heapBase rather than raw pointers, so the
// on-heap encoding stays width-independent of the host's real address
// size. heapBase (offset 0) is the prologue's payload address, which is
// never free, so an offset of 0 unambiguously means "no link".

func (a *Allocator) linkOffset(bp uintptr) uint32 {
	if bp == 0 {
		return 0
	}
	return uint32(bp - a.heapBase)
}

func (a *Allocator) linkAddr(off uint32) uintptr {
	if off == 0 {
		return 0
	}
	return a.heapBase + uintptr(off)
}

func (a *Allocator) prevFree(bp uintptr) uintptr { return a.linkAddr(readWord(bp)) }

func (a *Allocator) setPrevFree(bp, v uintptr) { writeWord(bp, a.linkOffset(v)) }

func (a *Allocator) nextFree(bp uintptr) uintptr { return a.linkAddr(readWord(bp + wordSize)) }

func (a *Allocator) setNextFree(bp, v uintptr) { writeWord(bp+wordSize, a.linkOffset(v)) }

// addFree pushes bp onto the head of the free-list.
func (a *Allocator) addFree(bp uintptr) {
	if a.freeListHd == 0 {
		a.freeListHd = bp
		a.setPrevFree(bp, 0)
		a.setNextFree(bp, 0)
		return
	}

	a.setPrevFree(a.freeListHd, bp)
	a.setPrevFree(bp, 0)
	a.setNextFree(bp, a.freeListHd)
	a.freeListHd = bp
}

// removeFree splices bp out of the free-list. bp must currently be a
// member of the list.
func (a *Allocator) removeFree(bp uintptr) {
	prev := a.prevFree(bp)
	next := a.nextFree(bp)

	switch {
	case prev == 0 && next == 0:
		a.freeListHd = 0
	case prev == 0 && next != 0:
		a.freeListHd = next
		a.setPrevFree(next, 0)
	case prev != 0 && next == 0:
		a.setNextFree(prev, 0)
	default:
		a.setNextFree(prev, next)
		a.setPrevFree(next, prev)
	}
}
