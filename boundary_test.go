// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cznic-labs/galloc/internal/arena"
)

func newCheckedAllocator(t *testing.T) *Allocator {
	t.Helper()

	src, err := arena.New(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	a := New(WithArena(src))
	require.NoError(t, a.Init())
	return a
}

func TestAllocZeroReturnsNilWithoutGrowingHeap(t *testing.T) {
	a := newCheckedAllocator(t)
	used := a.epiloguePtr

	bp, err := a.Alloc(0)
	require.NoError(t, err)
	assert.Zero(t, bp)
	assert.Equal(t, used, a.epiloguePtr, "alloc(0) must not grow the heap")
}

func TestAllocOneAndEightYieldMinimumBlock(t *testing.T) {
	a := newCheckedAllocator(t)

	for _, size := range []int{1, 8} {
		bp, err := a.Alloc(size)
		require.NoError(t, err)
		assert.EqualValues(t, minBlock, blockSize(bp), "size=%d", size)
		a.Free(bp)
	}
}

func TestAllocNineYieldsTwentyFourBytes(t *testing.T) {
	a := newCheckedAllocator(t)

	bp, err := a.Alloc(9)
	require.NoError(t, err)
	assert.EqualValues(t, 24, blockSize(bp))
}

func TestFreeNilIsNoOp(t *testing.T) {
	a := newCheckedAllocator(t)
	assert.NotPanics(t, func() { a.Free(0) })
	assert.True(t, a.Check())
}

func TestFreeBeforeInitIsNoOp(t *testing.T) {
	a := New(WithArena(mustArena(t)))
	assert.NotPanics(t, func() { a.Free(0x1000) })
}

func TestAllocAllocationsNeverOverlap(t *testing.T) {
	a := newCheckedAllocator(t)

	var live []uintptr
	for i := 0; i < 64; i++ {
		bp, err := a.Alloc(16 + i%3*16)
		require.NoError(t, err)
		live = append(live, bp)
	}

	for i, bp := range live {
		lo, hi := headerAddr(bp), headerAddr(bp)+uintptr(blockSize(bp))
		for j, other := range live {
			if i == j {
				continue
			}
			olo, ohi := headerAddr(other), headerAddr(other)+uintptr(blockSize(other))
			overlap := lo < ohi && olo < hi
			assert.False(t, overlap, "block %d overlaps block %d", i, j)
		}
	}
}

func TestSizeMonotonicity(t *testing.T) {
	sizes := []int{1, 2, 8, 9, 16, 17, 100, 4096}
	for i := 1; i < len(sizes); i++ {
		assert.LessOrEqual(t, adjustedSize(sizes[i-1]), adjustedSize(sizes[i]))
	}
}

func mustArena(t *testing.T) *arena.Source {
	t.Helper()
	src, err := arena.New(1 << 16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}
