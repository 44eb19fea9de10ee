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

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidConfig is returned, before any computation starts, for a
// non-positive dimension, a negative tile size or concurrency, or an unknown
// variant.
var ErrInvalidConfig = errors.New("matmul: invalid configuration")

// Variant selects the kernel strategy.
type Variant int

const (
	// Naive is the plain i, j, k triple loop.
	Naive Variant = iota

	// Unrolled is the triple loop with the k loop unrolled by 4.
	Unrolled

	// Blocked is the cache-blocked (tiled) loop nest.
	Blocked

	// Aligned is the Naive loop nest over aligned buffers.
	Aligned
)

// Variants lists every kernel strategy in report order.
var Variants = []Variant{Naive, Unrolled, Blocked, Aligned}

// String returns the lowercase variant name.
func (v Variant) String() string {
	switch v {
	case Naive:
		return "naive"
	case Unrolled:
		return "unrolled"
	case Blocked:
		return "blocked"
	case Aligned:
		return "aligned"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Label returns the title-cased name used in benchmark reports, e.g. "Blocked".
func (v Variant) Label() string {
	return cases.Title(language.English).String(v.String())
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	return v >= Naive && v <= Aligned
}

// Config parameterizes one Multiply call.
type Config struct {
	Variant Variant

	// TileSize is the block edge of the Blocked kernel. 0 means no tiling
	// (one tile of size N); values larger than N are clamped to N. The
	// untiled variants ignore it. It need not divide N.
	TileSize int

	// Concurrency is the number of workers. 0 means 1 (sequential).
	Concurrency int
}

// Validate checks cfg against matrix order n.
func (cfg Config) Validate(n int) error {
	switch {
	case n <= 0:
		return fmt.Errorf("%w: dimension %d must be > 0", ErrInvalidConfig, n)
	case !cfg.Variant.Valid():
		return fmt.Errorf("%w: unknown %s", ErrInvalidConfig, cfg.Variant)
	case cfg.TileSize < 0:
		return fmt.Errorf("%w: tile size %d must be > 0", ErrInvalidConfig, cfg.TileSize)
	case cfg.Concurrency < 0:
		return fmt.Errorf("%w: concurrency %d must be > 0", ErrInvalidConfig, cfg.Concurrency)
	}
	return nil
}

// normalize fills defaults for order n. cfg must already be valid.
func (cfg Config) normalize(n int) Config {
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 1
	}
	if cfg.Variant != Blocked || cfg.TileSize == 0 || cfg.TileSize > n {
		cfg.TileSize = n
	}
	return cfg
}
