// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import "github.com/sirupsen/logrus"

// Word, alignment and minimum-block tunables.
const (
	wordSize     = 4  // WSIZE
	dwordSize    = 8  // DSIZE
	alignment    = 8  // ALIGNMENT
	minBlock     = 16 // MINIMUM
	defaultChunk = 4096
)

// Allocator is a single-threaded boundary-tag heap allocator. Its zero
// value is not ready for use — construct one with New and a configured
// Arena, then call Init.
//
// The heap's three pieces of global state (heap base, free-list head,
// epilogue pointer) live on the struct rather than at package scope, so
// multiple independent heaps can coexist in one process.
type Allocator struct {
	arena Arena
	chunk int
	log   *logrus.Logger
	trace bool

	initialized bool
	heapBase    uintptr // payload pointer of the prologue; free-list link origin
	freeListHd  uintptr // payload pointer of the most-recently-added free block, or 0
	epiloguePtr uintptr // header address of the current epilogue
}

// Option configures an Allocator at construction time.
type Option func(*Allocator)

// WithArena supplies the page-grant primitive. Required before Init.
func WithArena(a Arena) Option { return func(al *Allocator) { al.arena = a } }

// WithChunkSize overrides the default heap-growth granularity (CHUNK,
// default 4096 bytes).
func WithChunkSize(n int) Option {
	return func(al *Allocator) {
		if n > 0 {
			al.chunk = n
		}
	}
}

// WithLogger overrides the logrus logger used for trace output and
// Check diagnostics.
func WithLogger(l *logrus.Logger) Option {
	return func(al *Allocator) {
		if l != nil {
			al.log = l
		}
	}
}

// WithTrace enables per-call debug logging of Alloc/Free/Realloc/heap
// growth.
func WithTrace(on bool) Option { return func(al *Allocator) { al.trace = on } }

// New constructs an Allocator. Call Init before using it.
func New(opts ...Option) *Allocator {
	al := &Allocator{chunk: defaultChunk, log: newDefaultLogger()}
	for _, opt := range opts {
		opt(al)
	}
	if al.trace && !al.log.IsLevelEnabled(logrus.DebugLevel) {
		al.log.SetLevel(logrus.DebugLevel)
	}
	return al
}
