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

// Command matmul-blocked times the parallel cache-blocked multiplication.
// Tiles of C are dealt to workers in contiguous row-major runs.
//
// Usage:
//
//	matmul-blocked <matrix_size> <num_threads> <block_size>
//
// block_size need not divide matrix_size; edge tiles are clipped.
package main

import (
	"os"

	"github.com/ajroetker/matbench/internal/bench"
)

func main() {
	os.Exit(bench.Execute(bench.Command(bench.BlockedParallel), os.Args[1:], os.Stdout, os.Stderr))
}
