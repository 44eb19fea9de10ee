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
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/ajroetker/matbench/matrix"
)

// matmulReference computes C = A * B using naive triple loop.
// Used as reference for correctness testing.
func matmulReference(a, b, c []float64, n int) {
	for i := range n {
		for j := range n {
			var sum float64
			for k := range n {
				sum += a[i*n+k] * b[k*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// newOperands returns aligned, randomly filled A and B plus aligned zero C.
func newOperands(t testing.TB, n int, seed uint64) (a, b, c *matrix.Matrix) {
	t.Helper()
	rng := matrix.NewSource(seed)
	mats := make([]*matrix.Matrix, 3)
	for i := range mats {
		m, err := matrix.NewAligned(n, matrix.DefaultAlignment)
		if err != nil {
			t.Fatalf("NewAligned(%d): %v", n, err)
		}
		mats[i] = m
	}
	matrix.Fill(mats[0], rng)
	matrix.Fill(mats[1], rng)
	return mats[0], mats[1], mats[2]
}

func canonical(t testing.TB, a, b *matrix.Matrix) *matrix.Matrix {
	t.Helper()
	want, err := matrix.New(a.N)
	if err != nil {
		t.Fatal(err)
	}
	matmulReference(a.Data, b.Data, want.Data, a.N)
	return want
}

func TestMultiplySmall(t *testing.T) {
	// [1 2]   [5 6]   [19 22]
	// [3 4] * [7 8] = [43 50]
	want := []float64{19, 22, 43, 50}

	for _, v := range Variants {
		for _, p := range []int{1, 2, 4} {
			t.Run(fmt.Sprintf("%s/P%d", v, p), func(t *testing.T) {
				a, b, c := newOperands(t, 2, 0)
				copy(a.Data, []float64{1, 2, 3, 4})
				copy(b.Data, []float64{5, 6, 7, 8})

				cfg := Config{Variant: v, Concurrency: p, TileSize: 1}
				if err := Multiply(a, b, c, cfg); err != nil {
					t.Fatal(err)
				}
				if !slices.Equal(c.Data, want) {
					t.Errorf("C = %v, want %v", c.Data, want)
				}
			})
		}
	}
}

func TestMultiplyIdentity(t *testing.T) {
	n := 9
	for _, v := range Variants {
		a, id, c := newOperands(t, n, 3)
		id.Zero()
		for i := range n {
			id.Set(i, i, 1)
		}

		if err := Multiply(a, id, c, Config{Variant: v, TileSize: 4, Concurrency: 3}); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(c.Data, a.Data) {
			t.Errorf("%s: A * I != A", v)
		}
	}
}

// TestMultiplyAgreement checks every configuration against the canonical
// i, j, k ordering.
func TestMultiplyAgreement(t *testing.T) {
	sizes := []int{1, 2, 3, 4, 5, 7, 16, 33, 64}
	concurrency := []int{0, 1, 2, 3, 4, 8}

	for _, n := range sizes {
		a, b, _ := newOperands(t, n, uint64(n))
		want := canonical(t, a, b)

		tiles := []int{0, 1, 2, 3, 4, 8, 16, n, n + 3}
		for _, v := range Variants {
			for _, p := range concurrency {
				for _, tile := range tiles {
					if v != Blocked && tile != 0 {
						continue
					}
					c, err := matrix.NewAligned(n, matrix.DefaultAlignment)
					if err != nil {
						t.Fatal(err)
					}
					cfg := Config{Variant: v, TileSize: tile, Concurrency: p}
					if err := Multiply(a, b, c, cfg); err != nil {
						t.Fatalf("N=%d %+v: %v", n, cfg, err)
					}
					diff, err := matrix.SumSquaredDiff(want, c)
					if err != nil {
						t.Fatal(err)
					}
					if diff >= matrix.Tolerance {
						t.Errorf("N=%d %s tile=%d P=%d: diff %e >= %e", n, v, tile, p, diff, matrix.Tolerance)
					}
				}
			}
		}
	}
}

// TestBlockedPartialTiles uses tile sizes that do not divide N, so the last
// block of every dimension is short.
func TestBlockedPartialTiles(t *testing.T) {
	testCases := []struct {
		n, tile, p int
	}{
		{5, 2, 2},
		{5, 2, 1},
		{5, 3, 4},
		{7, 4, 3},
		{10, 3, 2},
		{31, 8, 5},
		{50, 16, 8},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("N%d_T%d_P%d", tc.n, tc.tile, tc.p), func(t *testing.T) {
			a, b, c := newOperands(t, tc.n, 11)
			want := canonical(t, a, b)

			if err := Multiply(a, b, c, Config{Variant: Blocked, TileSize: tc.tile, Concurrency: tc.p}); err != nil {
				t.Fatal(err)
			}
			// The blocked kernel adds the same products in the same k order as
			// the canonical loop, so the result is bit-identical.
			if !slices.Equal(c.Data, want.Data) {
				diff, _ := matrix.SumSquaredDiff(want, c)
				t.Errorf("blocked result differs from canonical, diff %e", diff)
			}
		})
	}
}

// TestMultiplyOverwritesC runs every variant on a C full of garbage. The
// result must not depend on C's previous contents.
func TestMultiplyOverwritesC(t *testing.T) {
	n := 13
	for _, v := range Variants {
		a, b, c := newOperands(t, n, 5)
		want := canonical(t, a, b)
		for i := range c.Data {
			c.Data[i] = float64(i) * 1e6
		}

		for range 2 {
			if err := Multiply(a, b, c, Config{Variant: v, TileSize: 4, Concurrency: 3}); err != nil {
				t.Fatal(err)
			}
			if diff, _ := matrix.SumSquaredDiff(want, c); diff >= matrix.Tolerance {
				t.Errorf("%s: stale C leaked into result, diff %e", v, diff)
			}
		}
	}
}

func TestMultiplyInvalid(t *testing.T) {
	a, b, c := newOperands(t, 4, 1)
	small, err := matrix.NewAligned(3, matrix.DefaultAlignment)
	if err != nil {
		t.Fatal(err)
	}
	plain, err := matrix.New(4)
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name    string
		a, b, c *matrix.Matrix
		cfg     Config
		want    error
	}{
		{"negative tile", a, b, c, Config{Variant: Blocked, TileSize: -1}, ErrInvalidConfig},
		{"negative concurrency", a, b, c, Config{Variant: Naive, Concurrency: -2}, ErrInvalidConfig},
		{"unknown variant", a, b, c, Config{Variant: Variant(42)}, ErrInvalidConfig},
		{"unaligned C for aligned variant", a, b, plain, Config{Variant: Aligned}, ErrInvalidConfig},
		{"order mismatch", a, small, c, Config{Variant: Naive}, matrix.ErrDimensionMismatch},
		{"nil operand", a, nil, c, Config{Variant: Naive}, matrix.ErrDimensionMismatch},
		{"empty matrices", &matrix.Matrix{}, &matrix.Matrix{}, &matrix.Matrix{}, Config{Variant: Naive}, ErrInvalidConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var before []float64
			if tc.c != nil {
				for i := range tc.c.Data {
					tc.c.Data[i] = -1
				}
				before = slices.Clone(tc.c.Data)
			}

			err := Multiply(tc.a, tc.b, tc.c, tc.cfg)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Multiply error = %v, want %v", err, tc.want)
			}
			if tc.c != nil && !slices.Equal(before, tc.c.Data) {
				t.Error("C was modified by a rejected call")
			}
		})
	}
}

// TestMultiplyDisjointWrites records, for every store into C, which worker
// performed it and checks that the per-worker write sets partition all N*N
// cells.
func TestMultiplyDisjointWrites(t *testing.T) {
	testCases := []struct {
		n   int
		cfg Config
	}{
		{5, Config{Variant: Naive, Concurrency: 2}},
		{17, Config{Variant: Naive, Concurrency: 4}},
		{17, Config{Variant: Unrolled, Concurrency: 3}},
		{17, Config{Variant: Aligned, Concurrency: 8}},
		{5, Config{Variant: Blocked, TileSize: 2, Concurrency: 2}},
		{17, Config{Variant: Blocked, TileSize: 4, Concurrency: 3}},
		{17, Config{Variant: Blocked, TileSize: 5, Concurrency: 7}},
		{3, Config{Variant: Naive, Concurrency: 8}},
	}

	for _, tc := range testCases {
		name := fmt.Sprintf("N%d_%s_T%d_P%d", tc.n, tc.cfg.Variant, tc.cfg.TileSize, tc.cfg.Concurrency)
		t.Run(name, func(t *testing.T) {
			a, b, c := newOperands(t, tc.n, 2)
			parts, err := Plan(tc.n, tc.cfg)
			if err != nil {
				t.Fatal(err)
			}

			// One slice per worker, so recording needs no locking.
			writes := make([][]int, len(parts))
			obs := func(worker, i, j int) {
				writes[worker] = append(writes[worker], c.Index(i, j))
			}
			if err := MultiplyObserved(a, b, c, tc.cfg, obs); err != nil {
				t.Fatal(err)
			}

			owner := make([]int, tc.n*tc.n)
			for i := range owner {
				owner[i] = -1
			}
			for w, cells := range writes {
				for _, cell := range cells {
					if owner[cell] != -1 && owner[cell] != w {
						t.Fatalf("cell %d written by workers %d and %d", cell, owner[cell], w)
					}
					owner[cell] = w
				}
			}
			for cell, w := range owner {
				if w == -1 {
					t.Errorf("cell %d never written", cell)
				}
			}
			if tc.cfg.Concurrency > 1 && tc.n > 1 && len(parts) < 2 {
				t.Errorf("expected parallel plan, got %d partitions", len(parts))
			}

			want := canonical(t, a, b)
			if diff, _ := matrix.SumSquaredDiff(want, c); diff >= matrix.Tolerance {
				t.Errorf("observed run diff %e", diff)
			}
		})
	}
}

// TestSelfCheckScenario is the N=5, block 2, two-worker cross-check of all
// four kernels against Naive on identical inputs.
func TestSelfCheckScenario(t *testing.T) {
	const (
		n       = 5
		threads = 2
		block   = 2
	)
	a, b, _ := newOperands(t, n, 2025)

	results := make(map[Variant]*matrix.Matrix)
	for _, v := range Variants {
		c, err := matrix.NewAligned(n, matrix.DefaultAlignment)
		if err != nil {
			t.Fatal(err)
		}
		if err := Multiply(a, b, c, Config{Variant: v, TileSize: block, Concurrency: threads}); err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		results[v] = c
	}

	for _, v := range Variants[1:] {
		diff, err := matrix.SumSquaredDiff(results[Naive], results[v])
		if err != nil {
			t.Fatal(err)
		}
		if diff >= matrix.Tolerance {
			t.Errorf("Naive vs %s: diff %e", v.Label(), diff)
		}
	}
}
