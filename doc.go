// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package galloc implements a single-threaded, boundary-tag dynamic
// memory allocator over a linearly growable heap.
//
// The heap is a contiguous byte region bounded by two sentinels: an
// allocated prologue block at the head and a zero-size allocated
// epilogue header at the tail. Every real block between them carries a
// header and footer word packing (size, allocated-bit); a free block's
// payload additionally holds the two link words of a doubly-linked,
// LIFO-ordered free-list.
//
// Allocation (Alloc) normalizes the request to an 8-byte aligned,
// >=16-byte block size, first-fit scans the free-list, splits an
// oversize match, and otherwise grows the heap through an Arena (the
// page-grant primitive, an external collaborator — see
// internal/arena) before retrying placement. Deallocation (Free) clears
// the allocated bit and coalesces with any free neighbor in O(1).
// Check walks the heap and the free-list to audit the invariants that
// must hold at every call boundary.
//
// The allocator owns no locks: concurrent entry from multiple
// goroutines is undefined, matching a classic single-threaded malloc
// design.
package galloc
