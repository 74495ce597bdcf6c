// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"context"
	"fmt"
	"sync"
)

// Future is the eventual result of asynchronous work. It is resolved
// on the [Loop], so callbacks registered with [Future.Then] always run
// between frames.
type Future[T any] struct {
	loop *Loop

	mu       sync.Mutex
	done     chan struct{}
	resolved bool
	value    T
	err      error
	ok       []func(T)
	fail     []func(error)
}

// NewFuture returns an unresolved future bound to the loop.
func NewFuture[T any](lp *Loop) *Future[T] {
	return &Future[T]{loop: lp, done: make(chan struct{})}
}

// Go runs work on a new goroutine and resolves the returned future
// with its result on the loop. A panic in work resolves the future
// with an error instead.
func Go[T any](lp *Loop, work func() (T, error)) *Future[T] {
	f := NewFuture[T](lp)
	go func() {
		v, err := protect(work)
		lp.Post(func() { f.Resolve(v, err) })
	}()
	return f
}

func protect[T any](work func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zv T
			v, err = zv, fmt.Errorf("frame.Go: panic: %v", r)
		}
	}()
	return work()
}

// Resolve sets the result and runs the registered callbacks. It must be
// called on the loop; only the first call has any effect.
func (f *Future[T]) Resolve(v T, err error) {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return
	}
	f.resolved = true
	f.value, f.err = v, err
	ok, fail := f.ok, f.fail
	f.ok, f.fail = nil, nil
	close(f.done)
	f.mu.Unlock()
	if err != nil {
		for _, fn := range fail {
			fn(err)
		}
		return
	}
	for _, fn := range ok {
		fn(v)
	}
}

// Then registers callbacks for success and failure; either may be nil.
// If the future is already resolved, the matching callback is posted
// to the loop.
func (f *Future[T]) Then(ok func(T), fail func(error)) *Future[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.resolved {
		if ok != nil {
			f.ok = append(f.ok, ok)
		}
		if fail != nil {
			f.fail = append(f.fail, fail)
		}
		return f
	}
	v, err := f.value, f.err
	switch {
	case err != nil && fail != nil:
		f.loop.Post(func() { fail(err) })
	case err == nil && ok != nil:
		f.loop.Post(func() { ok(v) })
	}
	return f
}

// Done returns a channel that is closed when the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the value and error; it is only meaningful after Done.
func (f *Future[T]) Result() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Wait blocks until the future is resolved or ctx is done.
// Something else must be running the loop.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		var zv T
		return zv, ctx.Err()
	}
}
