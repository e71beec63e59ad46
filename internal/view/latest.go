// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view holds the primitives page controllers share: a latest-request
tracker, a debouncer, and a dependency gatherer.

Usage:

	ctx, gen := latest.Begin(ctx)
	page, err := resources.List(ctx, params)
	if err == nil {
	    latest.Commit(gen, page)
	}
*/
package view

import (
	"context"
	"sync"
)

// Latest remembers the newest result of a repeatable request.
//
// Every [Latest.Begin] starts a new generation and cancels the one before it.
// Results committed under an older generation are dropped, so a slow response
// can never overwrite the data of a newer one. The zero value is ready to use.
type Latest[T any] struct {
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc

	value     T
	committed bool
}

// Begin starts a request and returns its context and generation.
func (l *Latest[T]) Begin(ctx context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	l.cancel = cancel
	return ctx, l.generation
}

// Commit stores value if gen is still the newest generation.
//
// Returns:
//   - bool: false when the result was stale and discarded
func (l *Latest[T]) Commit(gen uint64, value T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		return false
	}
	l.value, l.committed = value, true
	return true
}

// Current reports whether gen is still the newest generation.
func (l *Latest[T]) Current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen == l.generation
}

// Get returns the last committed value.
func (l *Latest[T]) Get() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.committed
}

// Stop cancels the in-flight request, if any. Later commits for it are dropped.
func (l *Latest[T]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
}
