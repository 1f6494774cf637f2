// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import (
	"unsafe"

	"github.com/sirupsen/logrus"
)

// adjustedSize computes asize: the internal, 8-byte aligned,
// >=minBlock size needed to satisfy a size-byte request. The +dwordSize
// reserves one double-word for the header/footer pair.
func adjustedSize(size int) uint32 {
	if size <= dwordSize {
		return minBlock
	}
	return uint32(dwordSize * ((size + dwordSize + (dwordSize - 1)) / dwordSize))
}

// findFit first-fit scans the free-list for a block whose size is at
// least asize, returning its payload pointer or 0.
func (a *Allocator) findFit(asize uint32) uintptr {
	for bp := a.freeListHd; bp != 0; bp = a.nextFree(bp) {
		if blockSize(bp) >= asize {
			return bp
		}
	}
	return 0
}

// Alloc services a size-byte allocation request. It returns a
// payload pointer whose usable size is >= size, or 0 if size is 0 or
// the heap could not be grown further.
func (a *Allocator) Alloc(size int) (uintptr, error) {
	if !a.initialized {
		return 0, ErrNotInitialized
	}
	if size == 0 {
		return 0, nil
	}

	asize := adjustedSize(size)

	if bp := a.findFit(asize); bp != 0 {
		bp = a.place(bp, asize)
		a.traceAlloc(size, asize, bp)
		return bp, nil
	}

	extend := asize
	if a.chunk > int(extend) {
		extend = uint32(a.chunk)
	}

	bp, err := a.growHeap(int(extend) / wordSize)
	if err != nil {
		return 0, err
	}

	bp = a.place(bp, asize)
	a.traceAlloc(size, asize, bp)
	return bp, nil
}

// Free releases a payload pointer previously returned by Alloc. A
// nil pointer, or calling Free before Init, is a silent no-op; freeing
// a pointer not obtained from Alloc is undefined.
func (a *Allocator) Free(bp uintptr) {
	if bp == 0 || !a.initialized {
		return
	}

	size := blockSize(bp)
	setBlock(bp, size, 0)
	a.coalesce(bp)

	if a.trace {
		a.log.WithFields(logrus.Fields{"ptr": bp, "size": size}).Debug("galloc: freed")
	}
}

// Realloc resizes the block at p to size bytes, preserving the
// min(old, new) leading bytes. p == 0 behaves as Alloc(size); size == 0
// behaves as Free(p) and returns 0. The old usable payload size is read
// directly off the current block's header.
func (a *Allocator) Realloc(p uintptr, size int) (uintptr, error) {
	if p == 0 {
		return a.Alloc(size)
	}
	if size == 0 {
		a.Free(p)
		return 0, nil
	}

	oldUsable := int(blockSize(p)) - dwordSize

	newP, err := a.Alloc(size)
	if err != nil {
		return 0, err
	}

	n := oldUsable
	if size < n {
		n = size
	}
	if n > 0 {
		copy(byteView(newP, n), byteView(p, n))
	}

	a.Free(p)
	return newP, nil
}

func (a *Allocator) traceAlloc(size int, asize uint32, bp uintptr) {
	if a.trace {
		a.log.WithFields(logrus.Fields{"size": size, "asize": asize, "ptr": bp}).Debug("galloc: allocated")
	}
}

// byteView exposes n bytes starting at addr as a slice, bridging raw
// pointer arithmetic and []byte for the duration of a copy.
func byteView(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}
