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

import "github.com/ajroetker/matbench/workerpool"

// Tile is a rectangular region of C: rows [Rows.Start, Rows.End) by columns
// [Cols.Start, Cols.End).
type Tile struct {
	Rows, Cols workerpool.Range
}

// Cells returns the number of C elements covered by t.
func (t Tile) Cells() int {
	return t.Rows.Len() * t.Cols.Len()
}

// Partition is the set of tiles one worker computes and writes in a single
// Multiply call.
type Partition []Tile

// Cells returns the number of C elements covered by p.
func (p Partition) Cells() int {
	var total int
	for _, t := range p {
		total += t.Cells()
	}
	return total
}

// RowPartition splits the n rows of C into min(p, n) contiguous bands of
// near-equal height, each spanning every column.
func RowPartition(n, p int) []Partition {
	bands := workerpool.Split(n, p)
	parts := make([]Partition, len(bands))
	for i, rows := range bands {
		parts[i] = Partition{{Rows: rows, Cols: workerpool.Range{Start: 0, End: n}}}
	}
	return parts
}

// TilePartition enumerates the (i-block, j-block) pairs of an n×n matrix with
// block edge t in row-major order, clipping the last block of each dimension
// to n, and deals contiguous runs of pairs to min(p, pairs) workers. Each pair
// belongs to exactly one worker, which must run its full k-block sweep.
func TilePartition(n, t, p int) []Partition {
	if n <= 0 || t <= 0 {
		return nil
	}

	var pairs []Tile
	for i0 := 0; i0 < n; i0 += t {
		rows := workerpool.Range{Start: i0, End: min(i0+t, n)}
		for j0 := 0; j0 < n; j0 += t {
			cols := workerpool.Range{Start: j0, End: min(j0+t, n)}
			pairs = append(pairs, Tile{Rows: rows, Cols: cols})
		}
	}

	runs := workerpool.Split(len(pairs), p)
	parts := make([]Partition, len(runs))
	for i, r := range runs {
		parts[i] = Partition(pairs[r.Start:r.End:r.End])
	}
	return parts
}

// Plan returns the partitions a Multiply call with cfg on n×n matrices would
// hand to its workers, one per worker. The returned partitions cover every
// cell of C exactly once.
func Plan(n int, cfg Config) ([]Partition, error) {
	if err := cfg.Validate(n); err != nil {
		return nil, err
	}
	cfg = cfg.normalize(n)

	if cfg.Variant == Blocked {
		return TilePartition(n, cfg.TileSize, cfg.Concurrency), nil
	}
	return RowPartition(n, cfg.Concurrency), nil
}
