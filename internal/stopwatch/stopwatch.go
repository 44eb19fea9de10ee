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

// Package stopwatch measures elapsed wall time around a kernel call using the
// monotonic clock reading carried by time.Time, so wall-clock steps (NTP,
// DST) do not affect it.
package stopwatch

import "time"

// Stopwatch holds a start instant.
type Stopwatch struct {
	start time.Time
}

// Start returns a running stopwatch.
func Start() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Elapsed returns the monotonic time since Start.
func (s Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Time runs fn and returns how long it took.
func Time(fn func()) time.Duration {
	sw := Start()
	fn()
	return sw.Elapsed()
}

// Seconds returns Elapsed as fractional seconds.
func (s Stopwatch) Seconds() float64 {
	return s.Elapsed().Seconds()
}
