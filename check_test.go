// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassesOnFreshHeap(t *testing.T) {
	a := newCheckedAllocator(t)
	assert.True(t, a.Check())
}

func TestCheckDetectsEscapedCoalescing(t *testing.T) {
	a := newCheckedAllocator(t)

	x, err := a.Alloc(16)
	require.NoError(t, err)
	y, err := a.Alloc(16)
	require.NoError(t, err)

	a.Free(x)
	a.Free(y)
	require.True(t, a.Check(), "normal coalescing must keep the heap consistent")

	// Force two adjacent blocks to both read as free without going
	// through coalesce, simulating an escaped-coalescing corruption.
	x2, err := a.Alloc(16)
	require.NoError(t, err)
	y2, err := a.Alloc(16)
	require.NoError(t, err)
	setBlock(x2, blockSize(x2), 0)
	setBlock(y2, blockSize(y2), 0)
	assert.False(t, a.Check(), "two adjacent free-marked blocks must fail the coalescing audit")
}

func TestCheckDetectsFreeListInconsistency(t *testing.T) {
	a := newCheckedAllocator(t)

	bp, err := a.Alloc(16)
	require.NoError(t, err)
	a.Free(bp)
	require.True(t, a.Check())

	// Corrupt the footer's allocated bit while the header still says
	// free: the consistency audit must catch the disagreement.
	writeWord(footerAddr(bp), pack(blockSize(bp), 1))
	assert.False(t, a.Check())
}
