// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jeranaias/tasktree/internal/mapper"
)

// =============================================================================
// REGISTRATION
// =============================================================================

// Registration is a group member that has been created but not started.
type Registration[T any] struct {
	owner *registrar
	node  *Node
	fn    Func[T]
}

// Registrar creates group members. It is only valid inside the build
// function passed to Group.
type Registrar[T any] func(title string, fn Func[T]) *Registration[T]

// registrar identifies the build call a registration came from.
type registrar struct {
	sealed atomic.Bool
}

// Results holds a group's outcomes in build order.
type Results[T any] []*Result[T]

// Clear removes every member of the group from its container.
func (r Results[T]) Clear() {
	if len(r) == 0 {
		return
	}
	nodes := make([]*Node, 0, len(r))
	for _, res := range r {
		if res != nil {
			nodes = append(nodes, res.node)
		}
	}
	first := r[0].Handle
	first.tree.removeNodes(first.parent, nodes...)
}

// Values returns the members' values in build order.
func (r Results[T]) Values() []T {
	values := make([]T, len(r))
	for i, res := range r {
		if res != nil {
			values[i] = res.Value
		}
	}
	return values
}

// =============================================================================
// GROUP
// =============================================================================

// Group registers a batch of sibling tasks under parent and runs them with a
// bounded number in flight.
//
// build receives a Registrar and returns the members in the order they must
// appear. Every member's node is appended before any member starts, so the
// tree shows the siblings in build order whatever order they finish in.
//
// Members run with the concurrency given by WithConcurrency, defaulting to
// the tree's default (1 unless configured). With the default stop-on-error
// policy the first failure keeps members that have not started in the
// pending state; members already running finish, Group waits for them and
// returns the first error. With WithStopOnError(false) every member runs and
// failures are returned as an *AggregateError. A member that panics is
// reported as a *PanicError.
//
// Results are indexed by build order and are returned even when an error is
// returned, so the caller can inspect or clear the visible nodes.
func Group[T any](ctx context.Context, parent Parent, build func(task Registrar[T]) []*Registration[T], opts ...GroupOption) (Results[T], error) {
	if parent == nil {
		return nil, ErrNilParent
	}
	if build == nil {
		return nil, ErrNilBuild
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tree, owner := parent.target()
	cfg := tree.defaults
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	reg := &registrar{}
	regs := build(func(title string, fn Func[T]) *Registration[T] {
		if reg.sealed.Load() {
			panic(ErrRegistrarClosed)
		}
		return &Registration[T]{owner: reg, node: tree.newNode(title), fn: fn}
	})
	reg.sealed.Store(true)

	if err := validateRegistrations(reg, regs); err != nil {
		return nil, err
	}

	nodes := make([]*Node, len(regs))
	results := make(Results[T], len(regs))
	for i, r := range regs {
		nodes[i] = r.node
		results[i] = &Result[T]{Handle: newHandle(tree, owner, r.node)}
	}
	if err := tree.appendNodes(owner, nodes...); err != nil {
		return nil, err
	}

	_, err := mapper.Map(ctx, regs, func(ctx context.Context, r *Registration[T], i int) (struct{}, error) {
		value, err := runMember(ctx, r)
		results[i].Value = value
		return struct{}{}, err
	}, mapper.Options{Concurrency: cfg.concurrency, StopOnError: cfg.stopOnError})

	return results, err
}

// runMember runs a registration and converts a panic into a *PanicError so
// it cannot escape a worker goroutine.
func runMember[T any](ctx context.Context, r *Registration[T]) (value T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Title: r.node.Title(), Value: p}
		}
	}()
	return run(ctx, r.node, r.fn)
}

func validateRegistrations[T any](owner *registrar, regs []*Registration[T]) error {
	seen := make(map[*Registration[T]]struct{}, len(regs))
	for i, r := range regs {
		switch {
		case r == nil:
			return fmt.Errorf("%w: entry %d is nil", ErrInvalidRegistration, i)
		case r.owner != owner:
			return fmt.Errorf("%w: entry %d was created by another group", ErrInvalidRegistration, i)
		case r.fn == nil:
			return fmt.Errorf("%w: entry %d (%q): %w", ErrInvalidRegistration, i, r.node.title, ErrNilFunc)
		}
		if _, dup := seen[r]; dup {
			return fmt.Errorf("%w: entry %d (%q) is listed twice", ErrInvalidRegistration, i, r.node.title)
		}
		seen[r] = struct{}{}
	}
	return nil
}
