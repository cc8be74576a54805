package client

import (
	"context"
	"errors"
	"sync"
)

// ErrLoadFailed is the generic error a section exposes when its fetch
// fails; the underlying cause is not surfaced to keep display code uniform.
var ErrLoadFailed = errors.New("failed to load data")

// FetchFunc loads the current rows for a section.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Section is a per-view fetch/reconcile cell.  Each Refresh bumps an
// internal key; a fetch that finishes after a newer Refresh started, or
// after Close, is discarded so stale rows never overwrite fresh ones.
// Error and rows are mutually exclusive: a failed fetch clears the rows
// rather than leaving stale data next to the error.
type Section[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	key     int
	loading bool
	err     error
	rows    []T
	closed  bool
}

func NewSection[T any](fetch FetchFunc[T]) *Section[T] {
	return &Section[T]{fetch: fetch}
}

// Refresh re-fetches the section's rows.  The fetch itself runs without the
// lock held so handlers can call back into the store.
func (s *Section[T]) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.key++
	key := s.key
	s.loading = true
	s.mu.Unlock()

	rows, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	// A newer Refresh or Close superseded this fetch; drop the result.
	if s.closed || s.key != key {
		return
	}
	s.loading = false
	if err != nil {
		s.err = ErrLoadFailed
		s.rows = nil
		return
	}
	s.err = nil
	s.rows = rows
}

// Rows returns the current rows; nil while loading has never succeeded or
// after a failure.
func (s *Section[T]) Rows() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// Err returns the current error slot.
func (s *Section[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Loading reports whether a fetch is in flight.
func (s *Section[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Close detaches the section; in-flight and future fetches are ignored.
func (s *Section[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.loading = false
	s.rows = nil
	s.err = nil
}
