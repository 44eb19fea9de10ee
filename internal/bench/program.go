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

// Package bench is the glue behind the matmul-* executables: positional
// argument parsing, buffer setup, one timed kernel call, and the one-line
// report. It also hosts the N=5 self-test and the thread-scaling sweep.
package bench

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ajroetker/matbench/matmul"
)

// Program describes one benchmark executable.
type Program struct {
	// Name is the executable name shown in usage messages.
	Name     string
	Variant  matmul.Variant
	Parallel bool
}

var (
	NaiveParallel      = Program{Name: "matmul-naive", Variant: matmul.Naive, Parallel: true}
	NaiveSequential    = Program{Name: "matmul-naive-seq", Variant: matmul.Naive}
	UnrolledParallel   = Program{Name: "matmul-unrolled", Variant: matmul.Unrolled, Parallel: true}
	UnrolledSequential = Program{Name: "matmul-unrolled-seq", Variant: matmul.Unrolled}
	BlockedParallel    = Program{Name: "matmul-blocked", Variant: matmul.Blocked, Parallel: true}
	BlockedSequential  = Program{Name: "matmul-blocked-seq", Variant: matmul.Blocked}
	AlignedParallel    = Program{Name: "matmul-aligned", Variant: matmul.Aligned, Parallel: true}
)

// Programs returns every benchmark executable.
func Programs() []Program {
	return []Program{
		NaiveParallel, NaiveSequential,
		UnrolledParallel, UnrolledSequential,
		BlockedParallel, BlockedSequential,
		AlignedParallel,
	}
}

// ArgNames lists the positional arguments in the order they must be given.
func (p Program) ArgNames() []string {
	names := []string{"matrix_size"}
	if p.Parallel {
		names = append(names, "num_threads")
	}
	if p.Variant == matmul.Blocked {
		names = append(names, "block_size")
	}
	return names
}

// Usage returns the one-line usage message, e.g.
// "Usage: matmul-blocked <matrix_size> <num_threads> <block_size>".
func (p Program) Usage() string {
	var sb strings.Builder
	sb.WriteString("Usage: ")
	sb.WriteString(p.Name)
	for _, name := range p.ArgNames() {
		sb.WriteString(" <" + name + ">")
	}
	return sb.String()
}

// alignedBuffers reports whether the program allocates its matrices with
// matrix.NewAligned.
func (p Program) alignedBuffers() bool {
	return p.Variant == matmul.Aligned || p.Variant == matmul.Blocked
}

// Params are the parsed positional arguments. Threads is 1 for sequential
// programs and BlockSize is 0 for untiled ones.
type Params struct {
	N         int
	Threads   int
	BlockSize int
}

// Config returns the kernel configuration for params.
func (p Program) Config(params Params) matmul.Config {
	return matmul.Config{
		Variant:     p.Variant,
		TileSize:    params.BlockSize,
		Concurrency: params.Threads,
	}
}

// UsageError reports missing or malformed arguments.
type UsageError struct {
	Usage string
	Err   error
}

func (e *UsageError) Error() string {
	if e.Err == nil {
		return e.Usage
	}
	return e.Err.Error() + "\n" + e.Usage
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Parse reads prog's positional arguments. Extra trailing arguments are
// ignored. Missing or non-integer arguments yield a *UsageError; integers
// that are not positive yield matmul.ErrInvalidConfig.
func Parse(prog Program, args []string) (Params, error) {
	names := prog.ArgNames()
	if len(args) < len(names) {
		return Params{}, &UsageError{Usage: prog.Usage()}
	}

	vals := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return Params{}, &UsageError{
				Usage: prog.Usage(),
				Err:   fmt.Errorf("invalid %s %q", name, args[i]),
			}
		}
		if v <= 0 {
			return Params{}, fmt.Errorf("%w: %s must be > 0, got %d", matmul.ErrInvalidConfig, name, v)
		}
		vals[i] = v
	}

	params := Params{N: vals[0], Threads: 1}
	next := 1
	if prog.Parallel {
		params.Threads = vals[next]
		next++
	}
	if prog.Variant == matmul.Blocked {
		params.BlockSize = vals[next]
	}
	return params, nil
}
