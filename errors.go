// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// ErrOutOfMemory is returned (wrapped) when the arena refuses to grow the
// heap further.
var ErrOutOfMemory = stderrors.New("galloc: out of memory")

// ErrNotInitialized is returned by operations that require Init to have
// succeeded first.
var ErrNotInitialized = stderrors.New("galloc: allocator not initialized")

// ErrNoArena is returned by Init when the allocator was constructed
// without an Arena (see WithArena).
var ErrNoArena = stderrors.New("galloc: no arena configured")

// wrapOOM wraps an arena failure so the caller can still recover
// ErrOutOfMemory via errors.Is/errors.Cause. The arena's own error is
// kept only as text in the message; it is not part of the error chain.
func wrapOOM(cause error) error {
	return errors.Wrapf(ErrOutOfMemory, "heap growth failed: %v", cause)
}
