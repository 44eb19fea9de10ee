// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a fixed-size fork-join worker pool for the
// matmul kernels. A Pool owns exactly the requested number of goroutines;
// Run hands each precomputed task to one worker and returns only after every
// task has finished, which is the single join barrier of a kernel call.
//
// Usage:
//
//	pool := workerpool.New(len(parts))
//	defer pool.Close()
//
//	pool.Run(len(parts), func(task int) {
//	    compute(parts[task])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a set of persistent worker goroutines. Workers are spawned at
// creation and exit when Close is called.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one task of a Run call.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool once all queued work has completed.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Run executes fn(task) for every task in [0, numTasks) and blocks until all
// of them have returned. Each task runs start to finish on a single worker;
// tasks never split. The order in which tasks complete is unspecified.
//
// A single task, or any call on a closed pool, runs inline on the caller.
func (p *Pool) Run(numTasks int, fn func(task int)) {
	if numTasks <= 0 {
		return
	}

	if numTasks == 1 || p.closed.Load() {
		for task := range numTasks {
			fn(task)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(numTasks)

	for task := range numTasks {
		p.workC <- workItem{
			fn: func() {
				fn(task)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// Range is the half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns End - Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split divides [0, n) into min(parts, n) contiguous, non-empty ranges whose
// lengths differ by at most one; the first n%parts ranges are one longer.
// Returns nil when n <= 0 or parts <= 0.
func Split(n, parts int) []Range {
	if n <= 0 || parts <= 0 {
		return nil
	}
	parts = min(parts, n)

	base, extra := n/parts, n%parts
	ranges := make([]Range, parts)
	start := 0
	for i := range ranges {
		size := base
		if i < extra {
			size++
		}
		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}
	return ranges
}
