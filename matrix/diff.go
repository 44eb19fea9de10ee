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

package matrix

import "fmt"

// Tolerance is the sum-of-squared-differences threshold the self-test uses to
// decide that two kernels agree. SumSquaredDiff itself applies no threshold.
const Tolerance = 1e-12

// SumSquaredDiff returns Σ (x[i] - y[i])² over all elements.
func SumSquaredDiff(x, y *Matrix) (float64, error) {
	if !SameOrder(x, y) {
		return 0, fmt.Errorf("%w: cannot diff %s and %s", ErrDimensionMismatch, order(x), order(y))
	}
	var diff float64
	yd := y.Data[:len(x.Data)]
	for i, xv := range x.Data {
		d := xv - yd[i]
		diff += d * d
	}
	return diff, nil
}

// Equal reports whether SumSquaredDiff(x, y) < tol.
// Matrices of different order are never equal.
func Equal(x, y *Matrix, tol float64) bool {
	diff, err := SumSquaredDiff(x, y)
	return err == nil && diff < tol
}

func order(m *Matrix) string {
	if m == nil {
		return "nil"
	}
	return fmt.Sprintf("%d×%d", m.N, m.N)
}
