// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame provides a cooperative, single-threaded animation loop:
// frame callbacks are requested one frame at a time, and work from other
// goroutines (load completions, user tweaks) is posted to the loop and
// run strictly between frames, never while a frame callback is running.
package frame

import (
	"context"
	"sync"
	"time"
)

// Callback is a frame callback, called with the frame timestamp in
// milliseconds since the loop started.
type Callback func(ms float64)

// Loop is a cooperative scheduler driven by [Loop.Run] or, in tests,
// directly by [Loop.Step].
type Loop struct {

	// Interval is the time between frames in [Loop.Run].
	Interval time.Duration

	mu     sync.Mutex
	tasks  []func()
	frame  Callback
	wake   chan struct{}
	frames int
}

// NewLoop returns a new Loop running at the given frames per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		Interval: time.Second / time.Duration(fps),
		wake:     make(chan struct{}, 1),
	}
}

// RequestFrame registers fn to be called on the next frame. Only one
// frame callback is pending at a time; a later request replaces an
// earlier one that has not yet run.
func (lp *Loop) RequestFrame(fn Callback) {
	lp.mu.Lock()
	lp.frame = fn
	lp.mu.Unlock()
}

// Post queues fn to run on the loop before the next frame.
// It is safe to call from any goroutine.
func (lp *Loop) Post(fn func()) {
	lp.mu.Lock()
	lp.tasks = append(lp.tasks, fn)
	lp.mu.Unlock()
	select {
	case lp.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of posted tasks that have not yet run.
func (lp *Loop) Pending() int {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return len(lp.tasks)
}

// Frames returns the number of frame callbacks run so far.
func (lp *Loop) Frames() int {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	return lp.frames
}

// RunTasks runs all posted tasks, including any posted by those tasks.
func (lp *Loop) RunTasks() {
	for {
		lp.mu.Lock()
		tasks := lp.tasks
		lp.tasks = nil
		lp.mu.Unlock()
		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
	}
}

// Step runs all posted tasks and then the pending frame callback, if any,
// with the given timestamp. It returns true if a frame callback ran.
func (lp *Loop) Step(ms float64) bool {
	lp.RunTasks()
	lp.mu.Lock()
	fn := lp.frame
	lp.frame = nil
	if fn != nil {
		lp.frames++
	}
	lp.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(ms)
	return true
}

// Run drives the loop at [Loop.Interval] until ctx is done, passing a
// monotonic timestamp in milliseconds. Posted tasks also run promptly
// between ticks.
func (lp *Loop) Run(ctx context.Context) error {
	start := time.Now()
	tick := time.NewTicker(lp.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-lp.wake:
			lp.RunTasks()
		case now := <-tick.C:
			lp.Step(float64(now.Sub(start)) / float64(time.Millisecond))
		}
	}
}

// Do posts fn to the loop and waits for it to finish, or for ctx to be done.
func Do(ctx context.Context, lp *Loop, fn func()) error {
	done := make(chan struct{})
	lp.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
