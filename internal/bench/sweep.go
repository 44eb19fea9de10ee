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
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ajroetker/matbench/internal/stopwatch"
	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// DefaultSweepThreads are the worker counts used when none are given.
var DefaultSweepThreads = []int{1, 2, 4, 8}

const sweepUsage = "Usage: matmul-scaling <matrix_size> [num_threads...]"

// Sweep times the parallel Naive kernel once per entry of threads on the same
// random n×n inputs, writing one report line per run to w as it completes.
// C is freshly allocated for every run.
func Sweep(n int, threads []int, rng matrix.Source, w io.Writer) ([]Result, error) {
	for _, t := range threads {
		if err := (matmul.Config{Variant: matmul.Naive, Concurrency: t}).Validate(n); err != nil {
			return nil, err
		}
		if t == 0 {
			return nil, fmt.Errorf("%w: num_threads must be > 0", matmul.ErrInvalidConfig)
		}
	}

	a, err := allocate(n, 0)
	if err != nil {
		return nil, err
	}
	b, err := allocate(n, 0)
	if err != nil {
		return nil, err
	}
	matrix.Fill(a, rng)
	matrix.Fill(b, rng)

	results := make([]Result, 0, len(threads))
	for _, t := range threads {
		c, err := allocate(n, 0)
		if err != nil {
			return results, err
		}
		cfg := matmul.Config{Variant: matmul.Naive, Concurrency: t}

		var kernelErr error
		elapsed := stopwatch.Time(func() {
			kernelErr = matmul.Multiply(a, b, c, cfg)
		})
		if kernelErr != nil {
			return results, kernelErr
		}

		res := Result{
			Program: NaiveParallel,
			Params:  Params{N: n, Threads: t},
			Elapsed: elapsed,
		}
		fmt.Fprintln(w, res)
		results = append(results, res)
	}
	return results, nil
}

// SweepCommand returns the cobra command for matmul-scaling.
func SweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "matmul-scaling <matrix_size> [num_threads...]",
		Short:              "Time the parallel naive kernel across worker counts",
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return &UsageError{Usage: sweepUsage}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]int, len(args))
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return &UsageError{Usage: sweepUsage, Err: fmt.Errorf("invalid argument %q", arg)}
				}
				vals[i] = v
			}
			threads := vals[1:]
			if len(threads) == 0 {
				threads = DefaultSweepThreads
			}
			_, err := Sweep(vals[0], threads, matrix.NewSource(TimeSeed()), cmd.OutOrStdout())
			return err
		},
	}
}
