// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

import (
	"context"
	"fmt"
)

// Func is the body of a task. It receives the caller's context untouched and
// the API bound to its node.
type Func[T any] func(ctx context.Context, api *API) (T, error)

// =============================================================================
// HANDLE
// =============================================================================

// Handle references a registered node and the container holding it.
type Handle struct {
	tree   *Tree
	parent *Node
	node   *Node
}

func newHandle(tree *Tree, parent, node *Node) *Handle {
	return &Handle{tree: tree, parent: parent, node: node}
}

// Node returns the referenced node.
func (h *Handle) Node() *Node {
	return h.node
}

// State returns the node's current state.
func (h *Handle) State() State {
	return h.node.State()
}

// Clear removes the node from its container. Clearing the last top-level
// node detaches the renderer. Clear never stops a running function and is
// safe to call more than once.
func (h *Handle) Clear() {
	h.tree.removeNodes(h.parent, h.node)
}

// Result is the outcome of a task: its value plus the handle to its node.
type Result[T any] struct {
	Value T
	*Handle
}

// =============================================================================
// TASK
// =============================================================================

// Task registers a task under parent and runs fn on the calling goroutine.
//
// The node is appended to parent, moved to loading and handed to fn. When fn
// returns without error the node becomes successful unless fn flagged it with
// SetWarning or SetError. When fn returns an error the node is marked as
// errored with the error's message as output and that same error is returned.
// A panic marks the node the same way and is re-raised.
//
// Registering under the API of a task whose function has returned fails with
// ErrParentNotRunning and registers nothing.
//
// The returned Result is non-nil whenever the node was registered, including
// when fn fails, so the caller can still inspect or clear it.
func Task[T any](ctx context.Context, parent Parent, title string, fn Func[T]) (*Result[T], error) {
	if parent == nil {
		return nil, ErrNilParent
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tree, owner := parent.target()
	node := tree.newNode(title)
	if err := tree.appendNodes(owner, node); err != nil {
		return nil, err
	}

	res := &Result[T]{Handle: newHandle(tree, owner, node)}
	value, err := run(ctx, node, fn)
	res.Value = value
	return res, err
}

// run drives a registered node through loading to a terminal state.
func run[T any](ctx context.Context, node *Node, fn Func[T]) (value T, err error) {
	node.start()

	defer func() {
		if r := recover(); r != nil {
			node.fail(fmt.Sprint(r))
			node.tree.logger.Printf("tasktree: task %q panicked: %v", node.Title(), r)
			panic(r)
		}
	}()

	value, err = fn(ctx, &API{node: node})
	if err != nil {
		node.fail(err.Error())
		node.tree.logger.Printf("tasktree: task %q failed: %v", node.Title(), err)
		return value, err
	}

	node.settle()
	return value, nil
}
