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

import "github.com/ajroetker/matbench/matrix"

// kernelFunc computes the cells of C inside tile t. rec, when non-nil, is
// called for every store into C.
type kernelFunc func(a, b, c *matrix.Matrix, t Tile, tileSize int, rec func(i, j int))

func kernelFor(v Variant) kernelFunc {
	switch v {
	case Unrolled:
		return unrolledTile
	case Blocked:
		return blockedTile
	default:
		// Aligned differs from Naive only in how its buffers were allocated.
		return naiveTile
	}
}

// naiveTile is the canonical ordering: for each (i, j), sum A[i,k]*B[k,j] for
// k = 0..N-1 into a scalar and store it once.
func naiveTile(a, b, c *matrix.Matrix, t Tile, _ int, rec func(i, j int)) {
	n := a.N
	bd := b.Data
	for i := t.Rows.Start; i < t.Rows.End; i++ {
		aRow := a.Row(i)
		cRow := c.Row(i)
		for j := t.Cols.Start; j < t.Cols.End; j++ {
			var sum float64
			idx := b.Index(0, j)
			for k := range n {
				sum += aRow[k] * bd[idx]
				idx += n
			}
			cRow[j] = sum
			if rec != nil {
				rec(i, j)
			}
		}
	}
}

// unrolledTile processes k in strides of 4, adding four products per step to
// the accumulator, then finishes the last 0-3 terms one at a time.
func unrolledTile(a, b, c *matrix.Matrix, t Tile, _ int, rec func(i, j int)) {
	n := a.N
	bd := b.Data
	for i := t.Rows.Start; i < t.Rows.End; i++ {
		aRow := a.Row(i)
		cRow := c.Row(i)
		for j := t.Cols.Start; j < t.Cols.End; j++ {
			var sum float64
			idx := b.Index(0, j)
			k := 0
			for ; k+4 <= n; k += 4 {
				sum += aRow[k]*bd[idx] +
					aRow[k+1]*bd[idx+n] +
					aRow[k+2]*bd[idx+2*n] +
					aRow[k+3]*bd[idx+3*n]
				idx += 4 * n
			}
			for ; k < n; k++ {
				sum += aRow[k] * bd[idx]
				idx += n
			}
			cRow[j] = sum
			if rec != nil {
				rec(i, j)
			}
		}
	}
}

// blockedTile computes one (i-block, j-block) pair of C. The region is zeroed
// first, then every k-block adds its partial products to the running value
// stored in C, so the pair must be swept over all k-blocks by one worker.
// The final block in each dimension may be shorter than tileSize.
func blockedTile(a, b, c *matrix.Matrix, t Tile, tileSize int, rec func(i, j int)) {
	n := a.N
	bd := b.Data

	for i := t.Rows.Start; i < t.Rows.End; i++ {
		clear(c.Row(i)[t.Cols.Start:t.Cols.End])
		if rec != nil {
			for j := t.Cols.Start; j < t.Cols.End; j++ {
				rec(i, j)
			}
		}
	}

	for k0 := 0; k0 < n; k0 += tileSize {
		kEnd := min(k0+tileSize, n)
		for i := t.Rows.Start; i < t.Rows.End; i++ {
			aRow := a.Row(i)[k0:kEnd]
			cRow := c.Row(i)
			for j := t.Cols.Start; j < t.Cols.End; j++ {
				sum := cRow[j]
				idx := b.Index(k0, j)
				for _, aik := range aRow {
					sum += aik * bd[idx]
					idx += n
				}
				cRow[j] = sum
				if rec != nil {
					rec(i, j)
				}
			}
		}
	}
}
