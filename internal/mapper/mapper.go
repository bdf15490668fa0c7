// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mapper runs a slice of items through a function with a bounded
// number of calls in flight.
//
// Two error policies are supported:
//   - stop on error: the first failure stops dispatching items that have not
//     started yet; items already running finish and their outputs are kept.
//   - collect all: every item runs and failures are combined into an
//     *AggregateError in input order.
//
// The context passed to Map only gates dispatch. Item functions receive the
// caller's context unchanged, so a sibling failure never cancels work that
// has already started.
package mapper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrNilFunc is returned when Map is called without a function.
	ErrNilFunc = errors.New("mapper: nil func")

	// ErrInvalidConcurrency is returned for a negative concurrency limit.
	ErrInvalidConcurrency = errors.New("mapper: concurrency cannot be negative")
)

// Func maps one item. index is the item's position in the input slice.
type Func[In, Out any] func(ctx context.Context, item In, index int) (Out, error)

// Options configures Map.
type Options struct {
	// Concurrency bounds the number of calls in flight. 0 means unlimited.
	Concurrency int

	// StopOnError stops dispatching new items after the first failure.
	// When false every item runs and failures are aggregated.
	StopOnError bool
}

// DefaultOptions returns unlimited concurrency with stop-on-error enabled.
func DefaultOptions() Options {
	return Options{StopOnError: true}
}

// =============================================================================
// AGGREGATE ERROR
// =============================================================================

// AggregateError combines the failures of a collect-all run, ordered by the
// index of the item that produced them.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d errors occurred: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes every member error to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// =============================================================================
// MAP
// =============================================================================

// Map calls fn for every item with at most opts.Concurrency calls in flight
// and returns the outputs indexed like items. Outputs of items that never ran
// are left as the zero value.
//
// Items are dispatched in input order. The returned slice is always non-nil
// when items is non-empty, even when an error is returned.
func Map[In, Out any](ctx context.Context, items []In, fn Func[In, Out], opts Options) ([]Out, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if opts.Concurrency < 0 {
		return nil, ErrInvalidConcurrency
	}
	if ctx == nil {
		ctx = context.Background()
	}

	out := make([]Out, len(items))
	if len(items) == 0 {
		return out, nil
	}

	if opts.StopOnError {
		return out, mapStopOnError(ctx, items, fn, opts.Concurrency, out)
	}
	return out, mapCollectAll(ctx, items, fn, opts.Concurrency, out)
}

func mapStopOnError[In, Out any](ctx context.Context, items []In, fn Func[In, Out], limit int, out []Out) error {
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}

	dispatchCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var sem *semaphore.Weighted
	if limit > 0 {
		sem = semaphore.NewWeighted(int64(limit))
	}

	var eg errgroup.Group
	skipped := false
	for i, item := range items {
		// The first batch fills every slot before any item can fail. Later
		// items wait for a free slot and start only if nothing failed
		// meanwhile; once started an item always runs.
		if sem != nil {
			_ = sem.Acquire(context.Background(), 1)
			if i >= limit && dispatchCtx.Err() != nil {
				sem.Release(1)
				skipped = true
				break
			}
		}

		i, item := i, item
		eg.Go(func() error {
			if sem != nil {
				defer sem.Release(1)
			}
			value, err := fn(ctx, item, i)
			out[i] = value
			if err != nil {
				// Cancel before the slot is released so the next item
				// sees the failure.
				cancel(err)
			}
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	if skipped {
		return context.Cause(ctx)
	}
	return nil
}

func mapCollectAll[In, Out any](ctx context.Context, items []In, fn Func[In, Out], limit int, out []Out) error {
	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}

	errs := make([]error, len(items))
	skipped := false
	for i, item := range items {
		if ctx.Err() != nil {
			skipped = true
			break
		}
		i, item := i, item
		eg.Go(func() error {
			value, err := fn(ctx, item, i)
			out[i] = value
			errs[i] = err
			return nil
		})
	}
	_ = eg.Wait()

	var failures []error
	for _, err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}
	if skipped {
		failures = append(failures, context.Cause(ctx))
	}
	if len(failures) == 0 {
		return nil
	}
	return &AggregateError{Errors: failures}
}
