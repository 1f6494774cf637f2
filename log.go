// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package galloc

import "github.com/sirupsen/logrus"

// newDefaultLogger returns the logger an Allocator uses when none is
// supplied via WithLogger: a new logrus logger at Info level, silent
// unless trace is enabled (New then lowers it to Debug) or Check fails.
func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return l
}
