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

	"github.com/spf13/cobra"

	"github.com/ajroetker/matbench/matmul"
	"github.com/ajroetker/matbench/matrix"
)

// Self-test parameters.
const (
	SelfTestN         = 5
	SelfTestThreads   = 2
	SelfTestBlockSize = 2
	SelfTestSeed      = 2025
)

// SelfTest multiplies one pair of random SelfTestN×SelfTestN matrices with
// every kernel and with gonum's BLAS, prints each result's squared difference
// from the Naive result, and reports whether all of them are below
// matrix.Tolerance. A mismatch is reported in the output, not as an error.
func SelfTest(w io.Writer, seed uint64) (bool, error) {
	n := SelfTestN
	alignment := matrix.PreferredAlignment()

	a, err := allocate(n, alignment)
	if err != nil {
		return false, err
	}
	b, err := allocate(n, alignment)
	if err != nil {
		return false, err
	}
	rng := matrix.NewSource(seed)
	matrix.Fill(a, rng)
	matrix.Fill(b, rng)

	results := make(map[matmul.Variant]*matrix.Matrix, len(matmul.Variants))
	for _, v := range matmul.Variants {
		c, err := allocate(n, alignment)
		if err != nil {
			return false, err
		}
		cfg := matmul.Config{Variant: v, TileSize: SelfTestBlockSize, Concurrency: SelfTestThreads}
		if err := matmul.Multiply(a, b, c, cfg); err != nil {
			return false, fmt.Errorf("%s: %w", v, err)
		}
		results[v] = c
	}

	blas, err := allocate(n, alignment)
	if err != nil {
		return false, err
	}
	if err := matmul.Reference(a, b, blas); err != nil {
		return false, err
	}

	naive := results[matmul.Naive]
	checks := []struct {
		label string
		c     *matrix.Matrix
	}{
		{matmul.Unrolled.Label(), results[matmul.Unrolled]},
		{matmul.Blocked.Label(), results[matmul.Blocked]},
		{matmul.Aligned.Label(), results[matmul.Aligned]},
		{"BLAS", blas},
	}

	ok := true
	for _, check := range checks {
		diff, err := matrix.SumSquaredDiff(naive, check.c)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(w, "Difference (Naive vs. %-9s = %e\n", check.label+")", diff)
		ok = ok && diff < matrix.Tolerance
	}

	if ok {
		fmt.Fprintf(w, "All methods match the naive approach for N=%d.\n", n)
	} else {
		fmt.Fprintln(w, "Some methods differ from naive result. Investigate!")
	}
	return ok, nil
}

// SelfTestCommand returns the cobra command for matmul-selftest. It ignores
// arguments and fails only if the self-test cannot run at all.
func SelfTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "matmul-selftest",
		Short:              fmt.Sprintf("Cross-check every kernel against Naive for N=%d", SelfTestN),
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := SelfTest(cmd.OutOrStdout(), SelfTestSeed)
			return err
		},
	}
}
