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

// TestScenarioSplitThenCoalesce allocates one block out of a freshly
// grown chunk, then frees it and checks it merges back with the
// leftover tail.
func TestScenarioSplitThenCoalesce(t *testing.T) {
	a := newCheckedAllocator(t)

	p, err := a.Alloc(16)
	require.NoError(t, err)
	require.True(t, a.Check())
	assert.EqualValues(t, 24, blockSize(p))

	remaining := blockSize(nextBlockAddr(p))
	assert.GreaterOrEqual(t, int(remaining), defaultChunk-24)

	a.Free(p)
	require.True(t, a.Check())
	assert.EqualValues(t, 1, countFreeBlocks(a))
	assert.GreaterOrEqual(t, int(blockSize(a.freeListHd)), defaultChunk)
}

// TestScenarioFirstFitSelectsHead checks that freeing a block pushes
// it to the free-list head and that the next same-size request reuses
// it.
func TestScenarioFirstFitSelectsHead(t *testing.T) {
	a := newCheckedAllocator(t)

	x, err := a.Alloc(16)
	require.NoError(t, err)
	b, err := a.Alloc(16)
	require.NoError(t, err)
	_, err = a.Alloc(16)
	require.NoError(t, err)

	a.Free(b)
	require.Equal(t, b, a.freeListHd, "freeing b must push it to the LIFO head")

	got, err := a.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, b, got, "next alloc(16) must reuse the just-freed head block")
	_ = x
}

// TestScenarioThreeWayCoalesce frees three adjacent blocks out of
// order and checks they merge into a single block spanning all three.
func TestScenarioThreeWayCoalesce(t *testing.T) {
	a := newCheckedAllocator(t)

	x, err := a.Alloc(32)
	require.NoError(t, err)
	y, err := a.Alloc(32)
	require.NoError(t, err)
	z, err := a.Alloc(32)
	require.NoError(t, err)
	_, err = a.Alloc(32)
	require.NoError(t, err)

	each := adjustedSize(32)

	a.Free(x)
	a.Free(z)
	a.Free(y)
	require.True(t, a.Check())

	assert.EqualValues(t, 3*each, blockSize(x), "x, y and z must merge into one block spanning all three")
}

// TestScenarioGrowthOnMiss requests more than fits in one chunk and
// checks the heap grows to satisfy it.
func TestScenarioGrowthOnMiss(t *testing.T) {
	a := newCheckedAllocator(t)

	bp, err := a.Alloc(5000)
	require.NoError(t, err)
	assert.NotZero(t, bp)
	assert.Zero(t, bp%alignment)
	assert.True(t, a.Check())
}

// TestScenarioExhaustion drives a capacity-capped arena to exhaustion
// and checks the heap stays consistent afterward.
func TestScenarioExhaustion(t *testing.T) {
	src, err := arena.New(20 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	a := New(WithArena(src))
	require.NoError(t, a.Init())

	var live []uintptr
	var sawFailure bool
	for i := 0; i < 64; i++ {
		bp, err := a.Alloc(1 << 20)
		if err != nil {
			sawFailure = true
			break
		}
		live = append(live, bp)
	}

	require.True(t, sawFailure, "a 20MiB-capped arena must eventually refuse 1MiB allocations")

	for _, bp := range live {
		a.Free(bp)
	}
	assert.True(t, a.Check())
}

// TestScenarioReallocCopy checks Realloc preserves a block's leading
// bytes across a grow.
func TestScenarioReallocCopy(t *testing.T) {
	a := newCheckedAllocator(t)

	p, err := a.Alloc(10)
	require.NoError(t, err)

	want := byteView(p, 10)
	for i := range want {
		want[i] = byte(i)
	}
	original := append([]byte(nil), want...)

	q, err := a.Realloc(p, 100)
	require.NoError(t, err)
	assert.Equal(t, original, byteView(q, 10))
	assert.True(t, a.Check())
}

func countFreeBlocks(a *Allocator) int {
	n := 0
	for bp := a.freeListHd; bp != 0; bp = a.nextFree(bp) {
		n++
	}
	return n
}
