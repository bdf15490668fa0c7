// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mapper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func square(_ context.Context, n int, _ int) (int, error) {
	return n * n, nil
}

func TestMapPreservesInputOrder(t *testing.T) {
	t.Parallel()

	items := []int{5, 1, 4, 2, 3}
	delays := map[int]time.Duration{5: 30 * time.Millisecond, 1: 0, 4: 10 * time.Millisecond}

	out, err := Map(context.Background(), items, func(_ context.Context, n int, _ int) (int, error) {
		time.Sleep(delays[n])
		return n * 10, nil
	}, Options{Concurrency: len(items), StopOnError: true})

	require.NoError(t, err)
	require.Equal(t, []int{50, 10, 40, 20, 30}, out)
}

func TestMapEmptyInput(t *testing.T) {
	t.Parallel()

	out, err := Map(context.Background(), nil, square, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMapRejectsInvalidArguments(t *testing.T) {
	t.Parallel()

	_, err := Map[int, int](context.Background(), []int{1}, nil, DefaultOptions())
	require.ErrorIs(t, err, ErrNilFunc)

	_, err = Map(context.Background(), []int{1}, square, Options{Concurrency: -1})
	require.ErrorIs(t, err, ErrInvalidConcurrency)
}

func TestMapRespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	const limit = int32(3)
	items := make([]int, 12)

	var running, maxRunning int32
	_, err := Map(context.Background(), items, func(context.Context, int, int) (int, error) {
		curr := atomic.AddInt32(&running, 1)
		for {
			prev := atomic.LoadInt32(&maxRunning)
			if curr <= prev || atomic.CompareAndSwapInt32(&maxRunning, prev, curr) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return 0, nil
	}, Options{Concurrency: int(limit), StopOnError: true})

	require.NoError(t, err)
	require.LessOrEqual(t, atomic.LoadInt32(&maxRunning), limit)
	require.Greater(t, atomic.LoadInt32(&maxRunning), int32(0))
}

func TestMapStopOnErrorSkipsUnstartedItems(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	var calls int32

	out, err := Map(context.Background(), []int{0, 1, 2, 3}, func(_ context.Context, n int, _ int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if n == 1 {
			return 0, errBoom
		}
		return n + 100, nil
	}, Options{Concurrency: 1, StopOnError: true})

	require.ErrorIs(t, err, errBoom)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
	require.Equal(t, []int{100, 0, 0, 0}, out)
}

func TestMapStopOnErrorRunsWholeFirstBatch(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	for i := 0; i < 200; i++ {
		var calls int32
		failed := make(chan struct{})
		_, err := Map(context.Background(), []int{0, 1, 2, 3}, func(_ context.Context, n int, _ int) (int, error) {
			atomic.AddInt32(&calls, 1)
			if n == 0 {
				close(failed)
				return 0, errBoom
			}
			<-failed
			time.Sleep(2 * time.Millisecond)
			return n, nil
		}, Options{Concurrency: 3, StopOnError: true})

		require.ErrorIs(t, err, errBoom)
		// Items 0-2 share the first batch; item 3 waits for a slot, and
		// item 0 fails before releasing its own.
		require.Equal(t, int32(3), atomic.LoadInt32(&calls), "run %d", i)
	}
}

func TestMapStopOnErrorLetsStartedItemsFinish(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	release := make(chan struct{})
	var finished atomic.Bool
	var itemCtxErr error

	_, err := Map(context.Background(), []int{0, 1}, func(ctx context.Context, n int, _ int) (int, error) {
		if n == 0 {
			<-release
			// The item context is the caller's and must not be canceled.
			itemCtxErr = ctx.Err()
			finished.Store(true)
			return 0, nil
		}
		close(release)
		return 0, errBoom
	}, Options{Concurrency: 2, StopOnError: true})

	require.ErrorIs(t, err, errBoom)
	require.True(t, finished.Load())
	require.NoError(t, itemCtxErr)
}

func TestMapCollectAllAggregatesInInputOrder(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	errC := errors.New("c failed")

	out, err := Map(context.Background(), []string{"a", "b", "c"}, func(_ context.Context, s string, _ int) (string, error) {
		switch s {
		case "a":
			time.Sleep(20 * time.Millisecond)
			return "", errA
		case "c":
			return "", errC
		}
		return s + "!", nil
	}, Options{Concurrency: 3, StopOnError: false})

	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Equal(t, []error{errA, errC}, agg.Errors)
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errC)
	require.Equal(t, "2 errors occurred: a failed; c failed", err.Error())
	require.Equal(t, []string{"", "b!", ""}, out)
}

func TestMapStopsDispatchWhenContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32

	_, err := Map(ctx, []int{0, 1, 2}, func(_ context.Context, n int, _ int) (int, error) {
		atomic.AddInt32(&calls, 1)
		cancel()
		return n, nil
	}, Options{Concurrency: 1, StopOnError: true})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAggregateErrorSingleMessage(t *testing.T) {
	t.Parallel()

	err := &AggregateError{Errors: []error{errors.New("only")}}
	require.Equal(t, "only", err.Error())
}
