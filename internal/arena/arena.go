// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arena implements the page-grant primitive the core allocator
// builds on: a single, capacity-capped, anonymous memory-mapped region
// that can only be grown by bumping an internal offset ("brk")
// forward, never shrunk or returned to the OS. It reserves its whole
// capacity up front so the region the core allocator sees stays a
// single contiguous address range across every growth.
package arena

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrExhausted is returned by Extend when growing the arena would
// exceed its configured capacity.
var ErrExhausted = errors.New("arena: capacity exhausted")

// Source is a capped, contiguously-growable, mmap-backed byte region.
// The zero value is not usable; construct one with New.
type Source struct {
	mu     sync.Mutex
	region []byte // the full mmap'd reservation
	used   int    // bytes handed out so far; the "brk"
	closed bool
}

// New reserves capacity bytes of anonymous memory up front and returns
// a Source that can grow into it one Extend call at a time. capacity
// bounds how large the simulated heap may ever become.
func New(capacity int) (*Source, error) {
	if capacity <= 0 {
		return nil, errors.New("arena: capacity must be positive")
	}

	region, err := mmapReserve(capacity)
	if err != nil {
		return nil, errors.Wrap(err, "arena: reserve")
	}

	return &Source{region: region}, nil
}

// Extend implements galloc.Arena: it appends n freshly-zeroed bytes to
// the tail of the region and returns their address. The bytes are
// already zero because they come straight from a fresh anonymous
// mapping and are never reused once handed out (the arena only grows).
func (s *Source) Extend(n int) (uintptr, error) {
	if n <= 0 {
		return 0, errors.New("arena: n must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.New("arena: closed")
	}
	if s.used+n > len(s.region) {
		return 0, ErrExhausted
	}

	base := uintptr(unsafe.Pointer(&s.region[s.used])) //nolint:gosec
	s.used += n
	return base, nil
}

// Used reports how many bytes have been handed out so far.
func (s *Source) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

// Capacity reports the total reserved size.
func (s *Source) Capacity() int { return len(s.region) }

// Close unmaps the region. It is not necessary to Close a Source when
// exiting a process.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.region == nil {
		return nil
	}
	s.closed = true
	return munmap(s.region)
}
