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

import "math/rand/v2"

// Source produces uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// pcgStream decorrelates the two PCG seed words derived from one seed.
const pcgStream = 0x9e3779b97f4a7c15

// NewSource returns a generator seeded deterministically from seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}

// Fill sets every element of m to the next value drawn from rng, in storage
// order. Each element is visited exactly once.
func Fill(m *Matrix, rng Source) {
	for i := range m.Data {
		m.Data[i] = rng.Float64()
	}
}
