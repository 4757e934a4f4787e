/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package gopool provides a bounded goroutine pool for driving many
// concurrent callers against a single shared resource without spawning one
// goroutine per caller. It backs the fib package's concurrent stress tests,
// where many simulated clients hammer one SyncEngine.
package gopool

import (
	"log"
	"runtime/debug"
	"sync/atomic"
)

// Option configures a GoPool's queue depth and idle worker ceiling.
type Option struct {
	// MaxIdleWorkers is the max number of workers kept alive waiting for
	// tasks. Workers created beyond this count drain the queue once and exit.
	MaxIdleWorkers int

	// TaskChanBuffer is the size of the task queue.
	// if it's full, we will fall back to use `go` directly without using pool.
	// normally, the queue length should be small,
	// coz we will create new workers to pick tasks if necessary.
	TaskChanBuffer int
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		MaxIdleWorkers: 1000,
		TaskChanBuffer: 1000,
	}
}

// GoPool represents a simple worker pool which manages goroutines for background tasks.
type GoPool struct {
	name string

	workers int32
	maxIdle int32

	tasks chan func()

	createWorker func()
}

// NewGoPool create a new instance for goroutine worker
func NewGoPool(name string, o *Option) *GoPool {
	if o == nil {
		o = DefaultOption()
	}
	p := &GoPool{
		name:    name,
		tasks:   make(chan func(), o.TaskChanBuffer),
		maxIdle: int32(o.MaxIdleWorkers),
	}

	// fix: func literal escapes to heap
	p.createWorker = func() {
		p.runWorker()
	}
	return p
}

// Go runs the given func in background
func (p *GoPool) Go(f func()) {
	select {
	case p.tasks <- f:
	default:
		// full? fall back to use go directly
		go p.runTask(f)
		return
	}
	// luckily ... it's true when there're many workers.
	if len(p.tasks) == 0 {
		return
	}
	// all worker is busy, create a new one
	go p.createWorker()
}

func (p *GoPool) runTask(f func()) {
	defer func(p *GoPool) {
		if r := recover(); r != nil {
			log.Printf("GOPOOL: panic in pool: %s: %v: %s", p.name, r, debug.Stack())
		}
	}(p)
	f()
}

func (p *GoPool) runWorker() {
	id := atomic.AddInt32(&p.workers, 1)
	defer atomic.AddInt32(&p.workers, -1)

	if id > p.maxIdle {
		// drain task chan and exit without waiting
		for {
			select {
			case f := <-p.tasks:
				p.runTask(f)
			default:
				return
			}
		}
	}

	for f := range p.tasks {
		p.runTask(f)
	}
}
