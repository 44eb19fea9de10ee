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

// Package matmul computes C = A * B for square float64 matrices with four
// interchangeable kernels, each optionally split across a fixed number of
// workers:
//
//   - Naive: i, j, k loops, one scalar sum per C cell. This is the canonical
//     summation order every other kernel is checked against.
//   - Unrolled: as Naive, with the k loop unrolled by 4 and a scalar tail.
//   - Blocked: i-block, j-block, k-block loops stepping by Config.TileSize,
//     partial sums carried in C across k-blocks.
//   - Aligned: the Naive loop nest over buffers allocated with
//     matrix.NewAligned.
//
// Example usage:
//
//	a, _ := matrix.New(n)
//	b, _ := matrix.New(n)
//	c, _ := matrix.New(n)
//	matrix.Fill(a, rng)
//	matrix.Fill(b, rng)
//
//	err := matmul.Multiply(a, b, c, matmul.Config{
//	    Variant:     matmul.Blocked,
//	    TileSize:    64,
//	    Concurrency: runtime.GOMAXPROCS(0),
//	})
//
// Parallel work is planned up front (see Plan): untiled kernels give each
// worker a contiguous run of rows, the blocked kernel gives each worker a
// contiguous run of (i-block, j-block) pairs and sweeps every k-block of a
// pair on that worker. Partitions never share a C cell, so no locking is
// needed; Multiply returns only after all workers finish.
package matmul
