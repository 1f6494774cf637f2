// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import "github.com/sirupsen/logrus"

// Init bootstraps the heap: it lays down the prologue/epilogue
// sentinels and immediately performs one CHUNK-sized growth so the
// first Alloc does not see an empty free-list.
func (a *Allocator) Init() error {
	if a.arena == nil {
		return ErrNoArena
	}

	base, err := a.arena.Extend(4 * wordSize)
	if err != nil {
		return wrapOOM(err)
	}

	// offset 0: alignment pad (left zero)
	writeWord(base+1*wordSize, pack(dwordSize, 1)) // prologue header
	writeWord(base+2*wordSize, pack(dwordSize, 1)) // prologue footer
	writeWord(base+3*wordSize, pack(0, 1))          // epilogue header

	a.heapBase = base + 2*wordSize
	a.epiloguePtr = base + 3*wordSize
	a.freeListHd = 0
	a.initialized = true

	if _, err := a.growHeap(a.chunk / wordSize); err != nil {
		return err
	}
	return nil
}

// growHeap requests w words' worth of fresh bytes from the arena,
// rounds them up to a double-word multiple, appends one new free block
// and a fresh epilogue, and coalesces the new block with its
// predecessor if that predecessor is free. Returns the (possibly
// coalesced) block's payload pointer.
func (a *Allocator) growHeap(w int) (uintptr, error) {
	if w%2 != 0 {
		w++
	}
	n := w * wordSize

	p, err := a.arena.Extend(n)
	if err != nil {
		return 0, wrapOOM(err)
	}

	// p is the address just past the old epilogue header, so the new
	// block's header (one word before p) overwrites what used to be the
	// epilogue header.
	bp := p
	setBlock(bp, uint32(n), 0)

	newEpilogue := nextBlockAddr(bp)
	writeWord(headerAddr(newEpilogue), pack(0, 1))
	a.epiloguePtr = headerAddr(newEpilogue)

	if a.trace {
		a.log.WithFields(logrus.Fields{"bytes": n}).Debug("galloc: heap grown")
	}

	return a.coalesce(bp), nil
}
