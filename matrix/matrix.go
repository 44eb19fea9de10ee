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

// Package matrix provides the square float64 matrix storage used by the
// matmul kernels: zero-filled (optionally aligned) allocation, a row-major
// view, pseudo-random fill and a sum-of-squared-differences validator.
//
// Example usage:
//
//	rng := matrix.NewSource(42)
//	a, err := matrix.NewAligned(n, matrix.DefaultAlignment)
//	if err != nil {
//		return err
//	}
//	matrix.Fill(a, rng)
package matrix

import "errors"

var (
	// ErrInvalidDimension is returned when a matrix order is not positive.
	ErrInvalidDimension = errors.New("matrix: dimension must be > 0")

	// ErrAlloc is returned when a buffer of the requested size or alignment
	// cannot be produced.
	ErrAlloc = errors.New("matrix: allocation failed")

	// ErrDimensionMismatch is returned when two matrices that must have the
	// same order do not.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)

// Matrix is an N×N matrix of float64 stored contiguously in row-major order:
// element (r, c) lives at Data[r*N+c].
type Matrix struct {
	N    int
	Data []float64

	// alignment is the byte alignment requested at allocation, 0 if none.
	alignment int
}

// FromSlice wraps data as an n×n matrix without copying.
// It panics if len(data) != n*n.
func FromSlice(n int, data []float64) *Matrix {
	if n <= 0 || len(data) != n*n {
		panic("matrix: FromSlice length does not match n*n")
	}
	return &Matrix{N: n, Data: data}
}

// Index maps (r, c) to its offset in Data.
func (m *Matrix) Index(r, c int) int {
	return r*m.N + c
}

// Row returns row r as a slice of length N sharing storage with m.
// The capacity is clipped so appends never spill into the next row.
func (m *Matrix) Row(r int) []float64 {
	start := r * m.N
	end := start + m.N
	return m.Data[start:end:end]
}

// At returns element (r, c). Both coordinates are bounds checked.
func (m *Matrix) At(r, c int) float64 {
	return m.Row(r)[c]
}

// Set stores v at (r, c). Both coordinates are bounds checked.
func (m *Matrix) Set(r, c int, v float64) {
	m.Row(r)[c] = v
}

// Len returns the number of elements, N*N.
func (m *Matrix) Len() int {
	return len(m.Data)
}

// Alignment returns the byte alignment guaranteed for &Data[0], or 0 when the
// matrix was allocated without an alignment request.
func (m *Matrix) Alignment() int {
	return m.alignment
}

// Zero sets every element to 0.
func (m *Matrix) Zero() {
	clear(m.Data)
}

// SameOrder reports whether every matrix is non-nil and has the order of the
// first one.
func SameOrder(ms ...*Matrix) bool {
	if len(ms) == 0 || ms[0] == nil {
		return false
	}
	n := ms[0].N
	for _, m := range ms {
		if m == nil || m.N != n || len(m.Data) != n*n {
			return false
		}
	}
	return true
}
