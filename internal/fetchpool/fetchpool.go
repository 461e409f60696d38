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

// Package fetchpool is a demonstration of the surrounding-runtime
// collaborator the core assumes but never implements: something that
// fetches a task's fragment blobs in parallel and hands each one back to
// a single Process, serially, by index. The core itself is single
// threaded (see process.Process's exclusive-access contract); this
// package only exists to model that boundary without a real
// object-store client; only its own tests use it.
package fetchpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool reused across the fragment fetches of
// many queries, avoiding a goroutine-spawn per query.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the given number of workers. If numWorkers <=
// 0, it uses runtime.GOMAXPROCS(0).
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for i := 0; i < numWorkers; i++ {
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

// Close shuts down the pool. Safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// FetchAll calls fetch(i) for every i in [0, n) using atomic work
// stealing across the pool's workers, and returns the results in index
// order - the order a Process expects them to be Add-ed in. The first
// error encountered is returned; fetch is still invoked for the
// remaining indices, since fragment fetches are independent and the
// core imposes no cancellation model (see §5 of the design: "no
// timeouts or cancellation are defined by the core").
func (p *Pool) FetchAll(n int, fetch func(i int) ([]byte, error)) ([][]byte, error) {
	results := make([][]byte, n)
	errs := make([]error, n)

	if n <= 0 {
		return results, nil
	}

	if p.closed.Load() {
		for i := 0; i < n; i++ {
			results[i], errs[i] = fetch(i)
		}
		return results, firstError(errs)
	}

	workers := p.numWorkers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			results[i], errs[i] = fetch(i)
		}
		return results, firstError(errs)
	}

	var nextIdx atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(nextIdx.Add(1)) - 1
					if idx >= n {
						return
					}
					results[idx], errs[idx] = fetch(idx)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()

	return results, firstError(errs)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
