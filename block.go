// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import "unsafe"

// Block header/footer codec. Every function here is pure address
// arithmetic over already-placed header/footer words; none of them
// validate their input beyond what the heap's own invariants
// guarantee. Addresses are uintptr because the backing storage is an
// Arena-owned region outside the Go heap (see internal/arena) — there
// is nothing for the garbage collector to track or move.

func readWord(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr)) //nolint:gosec
}

func writeWord(addr uintptr, v uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = v //nolint:gosec
}

// pack combines a size (must already be a multiple of 8) and an
// allocated bit into one header/footer word.
func pack(size uint32, alloc uint32) uint32 { return size | alloc }

func getSize(word uint32) uint32 { return word &^ uint32(alignment-1) }

func getAlloc(word uint32) uint32 { return word & 1 }

// headerAddr returns the address of bp's header word.
func headerAddr(bp uintptr) uintptr { return bp - wordSize }

// footerAddr returns the address of bp's footer word.
func footerAddr(bp uintptr) uintptr {
	return bp + uintptr(getSize(readWord(headerAddr(bp)))) - dwordSize
}

// nextBlockAddr returns the payload address of the block immediately
// following bp.
func nextBlockAddr(bp uintptr) uintptr {
	return bp + uintptr(getSize(readWord(headerAddr(bp))))
}

// prevBlockAddr returns the payload address of the block immediately
// preceding bp, by reading that block's footer (the boundary tag
// trick this whole design exists to enable).
func prevBlockAddr(bp uintptr) uintptr {
	return bp - uintptr(getSize(readWord(bp-dwordSize)))
}

// blockSize reads bp's current size out of its header.
func blockSize(bp uintptr) uint32 { return getSize(readWord(headerAddr(bp))) }

// blockAllocated reports whether bp is currently marked allocated.
func blockAllocated(bp uintptr) bool { return getAlloc(readWord(headerAddr(bp))) == 1 }

// setBlock writes size/alloc into both bp's header and footer.
func setBlock(bp uintptr, size uint32, alloc uint32) {
	w := pack(size, alloc)
	writeWord(headerAddr(bp), w)
	writeWord(bp+uintptr(size)-dwordSize, w)
}
