// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"fmt"

	"github.com/ajroetker/matbench/matrix"
	"github.com/ajroetker/matbench/workerpool"
)

// Observer is called for every store into C with the index of the worker
// (partition) performing it. It is called concurrently from different
// workers, but never concurrently for the same worker index.
type Observer func(worker, row, col int)

// Multiply computes C = A * B using the kernel and parallel layout described
// by cfg. Every element of C is overwritten; its previous contents are
// ignored. A and B are only read.
//
// All matrices must have the same order. The Aligned variant additionally
// requires all three to come from matrix.NewAligned. Invalid input is
// rejected before any element of C is written.
func Multiply(a, b, c *matrix.Matrix, cfg Config) error {
	return multiply(a, b, c, cfg, nil)
}

// MultiplyObserved is Multiply with obs invoked for every store into C.
// It exists to verify the write partitioning and is much slower than Multiply.
func MultiplyObserved(a, b, c *matrix.Matrix, cfg Config, obs Observer) error {
	return multiply(a, b, c, cfg, obs)
}

func multiply(a, b, c *matrix.Matrix, cfg Config, obs Observer) error {
	if err := checkOperands(a, b, c); err != nil {
		return err
	}
	if cfg.Variant == Aligned {
		for _, m := range []*matrix.Matrix{a, b, c} {
			if m.Alignment() == 0 {
				return fmt.Errorf("%w: %s variant needs matrices from matrix.NewAligned", ErrInvalidConfig, cfg.Variant)
			}
		}
	}

	parts, err := Plan(a.N, cfg)
	if err != nil {
		return err
	}
	cfg = cfg.normalize(a.N)
	kernel := kernelFor(cfg.Variant)

	pool := workerpool.New(len(parts))
	defer pool.Close()

	pool.Run(len(parts), func(worker int) {
		var rec func(i, j int)
		if obs != nil {
			rec = func(i, j int) { obs(worker, i, j) }
		}
		for _, t := range parts[worker] {
			kernel(a, b, c, t, cfg.TileSize, rec)
		}
	})
	return nil
}

func checkOperands(a, b, c *matrix.Matrix) error {
	if !matrix.SameOrder(a, b, c) {
		return fmt.Errorf("%w: A, B and C must be non-nil and share one order", matrix.ErrDimensionMismatch)
	}
	if a.N <= 0 {
		return fmt.Errorf("%w: dimension %d must be > 0", ErrInvalidConfig, a.N)
	}
	return nil
}
