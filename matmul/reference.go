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
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/ajroetker/matbench/matrix"
)

// Reference computes C = A * B with gonum's BLAS Dgemm. It shares no code with
// the in-package kernels and serves as an independent cross-check.
func Reference(a, b, c *matrix.Matrix) error {
	if err := checkOperands(a, b, c); err != nil {
		return err
	}
	// beta = 0 makes Gemm overwrite C instead of accumulating into it.
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, general(a), general(b), 0, general(c))
	return nil
}

// general views m as a row-major BLAS matrix.
func general(m *matrix.Matrix) blas64.General {
	return blas64.General{
		Rows:   m.N,
		Cols:   m.N,
		Stride: m.N,
		Data:   m.Data,
	}
}
