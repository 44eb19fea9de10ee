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

package bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/ajroetker/matbench/internal/stopwatch"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// allocate produces one zero-filled matrix; alignment 0 means unaligned.
// Tests replace it to observe or fail allocations.
var allocate = func(n, alignment int) (*matrix.Matrix, error) {
	if alignment == 0 {
		return matrix.New(n)
	}
	return matrix.NewAligned(n, alignment)
}

// TimeSeed returns a seed derived from the wall clock.
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Result is one timed kernel call.
type Result struct {
	Program Program
	Params  Params
	Elapsed time.Duration
}

// String renders the report line:
//
//	[Blocked] N=1024, threads=8, block_size=64, time=0.866707 sec
func (r Result) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] N=%d", r.Program.Variant.Label(), r.Params.N)
	if r.Program.Parallel {
		fmt.Fprintf(&sb, ", threads=%d", r.Params.Threads)
	}
	if r.Program.Variant == matmul.Blocked {
		fmt.Fprintf(&sb, ", block_size=%d", r.Params.BlockSize)
	}
	fmt.Fprintf(&sb, ", time=%f sec", r.Elapsed.Seconds())
	return sb.String()
}

// Run allocates A, B and C for prog, fills A then B from rng, and times one
// Multiply call. The configuration is validated before anything is allocated.
func Run(prog Program, params Params, rng matrix.Source) (Result, error) {
	cfg := prog.Config(params)
	if err := cfg.Validate(params.N); err != nil {
		return Result{}, err
	}

	alignment := 0
	if prog.alignedBuffers() {
		alignment = matrix.PreferredAlignment()
	}
	a, b, c, err := allocateOperands(params.N, alignment)
	if err != nil {
		return Result{}, err
	}
	matrix.Fill(a, rng)
	matrix.Fill(b, rng)

	var kernelErr error
	elapsed := stopwatch.Time(func() {
		kernelErr = matmul.Multiply(a, b, c, cfg)
	})
	if kernelErr != nil {
		return Result{}, kernelErr
	}
	return Result{Program: prog, Params: params, Elapsed: elapsed}, nil
}

func allocateOperands(n, alignment int) (a, b, c *matrix.Matrix, err error) {
	if a, err = allocate(n, alignment); err != nil {
		return nil, nil, nil, err
	}
	if b, err = allocate(n, alignment); err != nil {
		return nil, nil, nil, err
	}
	if c, err = allocate(n, alignment); err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}
