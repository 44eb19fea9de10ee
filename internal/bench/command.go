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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajroetker/matbench/matrix"
)

// Command returns the cobra command for prog. Arguments are positional only;
// flag parsing is disabled so that every token reaches the argument checks.
func Command(prog Program) *cobra.Command {
	return &cobra.Command{
		Use:                prog.Name + " " + argsUse(prog.ArgNames()),
		Short:              fmt.Sprintf("Time one %s matrix multiplication", prog.Variant),
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		Args: func(cmd *cobra.Command, args []string) error {
			// Checked before RunE, so nothing is allocated on a short command line.
			if len(args) < len(prog.ArgNames()) {
				return &UsageError{Usage: prog.Usage()}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := Parse(prog, args)
			if err != nil {
				return err
			}
			res, err := Run(prog, params, matrix.NewSource(TimeSeed()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

// Execute runs cmd with args, writing reports to stdout and failures to
// stderr, and returns the process exit code: 0 on success, 1 otherwise.
func Execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, usage)
		} else {
			fmt.Fprintf(stderr, "%s: %v\n", cmd.Name(), err)
		}
		return 1
	}
	return 0
}

func argsUse(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "<" + name + ">"
	}
	return strings.Join(quoted, " ")
}
