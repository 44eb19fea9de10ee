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

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const (
	// DefaultAlignment is the byte alignment used by the aligned benchmark
	// programs.
	DefaultAlignment = 64

	elemSize = int(unsafe.Sizeof(float64(0)))
)

// CacheLineSize is the cache line size of the running CPU in bytes, as known
// to golang.org/x/sys/cpu.
var CacheLineSize = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// PreferredAlignment returns the larger of DefaultAlignment and CacheLineSize.
func PreferredAlignment() int {
	return max(DefaultAlignment, CacheLineSize)
}

// New allocates a zero-filled n×n matrix.
func New(n int) (*Matrix, error) {
	count, err := elementCount(n, 0)
	if err != nil {
		return nil, err
	}
	data, err := allocate(count)
	if err != nil {
		return nil, err
	}
	return &Matrix{N: n, Data: data}, nil
}

// NewAligned allocates a zero-filled n×n matrix whose first element starts at
// an address that is a multiple of alignment bytes.
//
// alignment must be a power of two and a multiple of the float64 size.
func NewAligned(n, alignment int) (*Matrix, error) {
	if alignment < elemSize || alignment&(alignment-1) != 0 {
		return nil, fmt.Errorf("%w: alignment %d is not a power of two >= %d", ErrAlloc, alignment, elemSize)
	}

	pad := alignment/elemSize - 1
	count, err := elementCount(n, pad)
	if err != nil {
		return nil, err
	}
	buf, err := allocate(count + pad)
	if err != nil {
		return nil, err
	}

	// Go heap objects never move, so an offset fixed here stays valid.
	var off int
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	if rem := int(addr % uintptr(alignment)); rem != 0 {
		if rem%elemSize != 0 {
			return nil, fmt.Errorf("%w: base address %#x is not float64 aligned", ErrAlloc, addr)
		}
		off = (alignment - rem) / elemSize
	}

	return &Matrix{
		N:         n,
		Data:      buf[off : off+count : off+count],
		alignment: alignment,
	}, nil
}

// elementCount returns n*n, checking that n*n+pad elements fit in memory
// addressable by an int byte count.
func elementCount(n, pad int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDimension, n)
	}
	limit := math.MaxInt/elemSize - pad
	if n > limit/n {
		return 0, fmt.Errorf("%w: %d×%d float64 elements overflow", ErrAlloc, n, n)
	}
	return n * n, nil
}

// allocate converts a runtime allocation panic into ErrAlloc.
func allocate(count int) (buf []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%w: %d float64 elements: %v", ErrAlloc, count, r)
		}
	}()
	return make([]float64, count), nil
}
