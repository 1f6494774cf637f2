// Copyright 2024 The galloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command galloc exercises the galloc allocator against a live,
// mmap-backed arena from the command line: it drives Init/Alloc/Free/
// Check in sequence so the allocator's behavior can be observed
// outside of a test binary.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cznic-labs/galloc"
	"github.com/cznic-labs/galloc/internal/arena"
)

func main() {
	var (
		capacity int
		chunk    int
		sizes    []int
		trace    bool
	)

	log := logrus.New()

	root := &cobra.Command{
		Use:   "galloc",
		Short: "Drive a galloc heap from the command line",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := arena.New(capacity)
			if err != nil {
				return err
			}
			defer src.Close()

			a := galloc.New(
				galloc.WithArena(src),
				galloc.WithChunkSize(chunk),
				galloc.WithLogger(log),
				galloc.WithTrace(trace),
			)

			if err := a.Init(); err != nil {
				return err
			}
			log.WithField("capacity", capacity).Info("heap initialized")

			var live []uintptr
			for _, size := range sizes {
				bp, err := a.Alloc(size)
				if err != nil {
					log.WithError(err).WithField("size", size).Warn("alloc failed")
					continue
				}
				live = append(live, bp)
				fmt.Printf("alloc(%d) -> %#x\n", size, bp)
			}

			if !a.Check() {
				return fmt.Errorf("heap check failed after allocation")
			}

			for _, bp := range live {
				a.Free(bp)
			}

			if !a.Check() {
				return fmt.Errorf("heap check failed after freeing everything")
			}
			log.Info("all checks passed")
			return nil
		},
	}

	root.Flags().IntVar(&capacity, "capacity", 20<<20, "arena capacity in bytes")
	root.Flags().IntVar(&chunk, "chunk", 4096, "heap growth granularity in bytes")
	root.Flags().IntSliceVar(&sizes, "alloc", []int{16, 32, 64}, "sequence of allocation sizes to request")
	root.Flags().BoolVar(&trace, "trace", false, "enable per-call trace logging")

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("galloc failed")
		os.Exit(1)
	}
}
