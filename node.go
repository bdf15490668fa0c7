// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// NODE
// =============================================================================

// Node is one unit of work in a Tree, running or finished.
//
// All fields are guarded by the owning tree's lock. Readers use the accessor
// methods; only the engine and the task's API mutate a node.
type Node struct {
	tree *Tree

	// id is a random identifier that stays stable for the node's lifetime
	id string

	title  string
	state  State
	status string
	output string

	// children holds nested tasks in creation order
	children taskList

	startedAt  time.Time
	finishedAt time.Time
}

func (t *Tree) newNode(title string) *Node {
	return &Node{
		tree:  t,
		id:    uuid.NewString(),
		title: title,
		state: StatePending,
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() string {
	return n.id
}

// Title returns the node's current label.
func (n *Node) Title() string {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.title
}

// State returns the node's current lifecycle state.
func (n *Node) State() State {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.state
}

// Status returns the auxiliary status label. Empty means unset.
func (n *Node) Status() string {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.status
}

// Output returns the last message set on the node. Empty means unset.
func (n *Node) Output() string {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.output
}

// Children returns a copy of the node's children in creation order.
func (n *Node) Children() []*Node {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return n.children.copy()
}

// Duration returns how long the node's function has been running, or how
// long it took once settled. Zero while pending.
func (n *Node) Duration() time.Duration {
	n.tree.mu.RLock()
	defer n.tree.mu.RUnlock()
	return spanOf(n.startedAt, n.finishedAt)
}

func spanOf(start, end time.Time) time.Duration {
	if start.IsZero() {
		return 0
	}
	if end.IsZero() {
		return time.Since(start)
	}
	return end.Sub(start)
}

// =============================================================================
// MUTATION (tree lock held by caller)
// =============================================================================

// setStateLocked applies a validated transition and records the start time.
// It reports whether the state changed. A flagged node keeps running, so the
// finish time is only recorded by finishLocked.
func (n *Node) setStateLocked(to State) bool {
	if !canTransition(n.state, to) {
		return false
	}
	if to == StateLoading {
		n.startedAt = time.Now()
	}
	n.state = to
	return true
}

// finishLocked records when the node's function returned.
func (n *Node) finishLocked() {
	if n.finishedAt.IsZero() {
		n.finishedAt = time.Now()
	}
}

// runningLocked reports whether the node's function has started and not yet
// returned. A running node may already be flagged warning or error.
func (n *Node) runningLocked() bool {
	return !n.startedAt.IsZero() && n.finishedAt.IsZero()
}

// start moves a pending node to loading.
func (n *Node) start() {
	n.tree.mutate(func() {
		n.setStateLocked(StateLoading)
	})
}

// settle marks the node successful unless its function already flagged a
// warning or an error.
func (n *Node) settle() {
	n.tree.mutate(func() {
		if n.state == StateLoading {
			n.setStateLocked(StateSuccess)
		}
		n.finishLocked()
	})
}

// fail marks the node as errored with the failure message as output.
func (n *Node) fail(message string) {
	n.tree.mutate(func() {
		n.setStateLocked(StateError)
		n.output = message
		n.finishLocked()
	})
}

// snapshotLocked deep-copies the node and its descendants.
func (n *Node) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:         n.id,
		Title:      n.title,
		State:      n.state,
		Status:     n.status,
		Output:     n.output,
		StartedAt:  n.startedAt,
		FinishedAt: n.finishedAt,
	}
	if len(n.children.nodes) > 0 {
		snap.Children = make([]Snapshot, len(n.children.nodes))
		for i, child := range n.children.nodes {
			snap.Children[i] = child.snapshotLocked()
		}
	}
	return snap
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an immutable copy of a node subtree taken under the tree lock.
// Renderers work from snapshots so they never hold the lock while drawing.
type Snapshot struct {
	ID         string
	Title      string
	State      State
	Status     string
	Output     string
	StartedAt  time.Time
	FinishedAt time.Time
	Children   []Snapshot
}

// Settled reports whether the node's function had returned when the
// snapshot was taken.
func (s Snapshot) Settled() bool {
	return !s.FinishedAt.IsZero()
}

// Duration returns the elapsed running time captured by the snapshot.
func (s Snapshot) Duration() time.Duration {
	return spanOf(s.StartedAt, s.FinishedAt)
}
