// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

import (
	"io"
	"log"
	"sync"
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer keeps a display of a tree up to date.
//
// Attach is called when the first node is appended to an empty root and
// Detach when the root becomes empty again or the tree is closed. A renderer reads the tree through
// Snapshot and learns about changes through OnChange. Neither method is called
// while the tree lock is held.
type Renderer interface {
	Attach(tree *Tree) error
	Detach()
}

// =============================================================================
// TASK LIST
// =============================================================================

// taskList is an ordered container of nodes. Guarded by the tree lock.
type taskList struct {
	nodes []*Node
}

func (l *taskList) append(nodes ...*Node) {
	l.nodes = append(l.nodes, nodes...)
}

// remove splices n out by identity and reports whether it was present.
func (l *taskList) remove(n *Node) bool {
	for i, existing := range l.nodes {
		if existing == n {
			copy(l.nodes[i:], l.nodes[i+1:])
			l.nodes[len(l.nodes)-1] = nil
			l.nodes = l.nodes[:len(l.nodes)-1]
			return true
		}
	}
	return false
}

func (l *taskList) copy() []*Node {
	out := make([]*Node, len(l.nodes))
	copy(out, l.nodes)
	return out
}

// =============================================================================
// TREE
// =============================================================================

// Tree is the root of a task hierarchy and the publisher observers subscribe
// to. The zero value is not usable; create trees with New.
type Tree struct {
	// mu guards every node reachable from root
	mu   sync.RWMutex
	root taskList

	listenersMu sync.Mutex
	listeners   []*listener

	// lifecycleMu serialises root membership changes with renderer
	// attach/detach so the two can never be observed out of order
	lifecycleMu sync.Mutex
	renderer    Renderer
	attached    bool

	logger   *log.Logger
	defaults groupConfig
}

type listener struct {
	fn func()
}

// New creates an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		logger:   log.New(io.Discard, "", 0),
		defaults: defaultGroupConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func (t *Tree) target() (*Tree, *Node) {
	return t, nil
}

// Len returns the number of top-level nodes.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.root.nodes)
}

// Nodes returns the top-level nodes in insertion order.
func (t *Tree) Nodes() []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.root.copy()
}

// Snapshot returns a deep copy of the whole tree.
func (t *Tree) Snapshot() []Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snaps := make([]Snapshot, len(t.root.nodes))
	for i, n := range t.root.nodes {
		snaps[i] = n.snapshotLocked()
	}
	return snaps
}

// Attached reports whether the renderer is currently attached.
func (t *Tree) Attached() bool {
	t.lifecycleMu.Lock()
	defer t.lifecycleMu.Unlock()
	return t.attached
}

// Close detaches the renderer while keeping every node in place, so the
// renderer's last frame shows the finished tree. Appending a top-level node
// afterwards attaches the renderer again. Close is safe to call more than
// once.
func (t *Tree) Close() {
	t.lifecycleMu.Lock()
	defer t.lifecycleMu.Unlock()
	t.detachLocked()
}

// =============================================================================
// CHANGE NOTIFICATION
// =============================================================================

// OnChange registers fn to be called after every mutation of the tree:
// nodes appended or removed, and any field of a node changing. The call
// carries no detail; observers re-read the tree with Snapshot.
//
// fn may be invoked concurrently from the goroutines running tasks and must
// not block. The returned function unsubscribes fn.
func (t *Tree) OnChange(fn func()) (unsubscribe func()) {
	l := &listener{fn: fn}

	t.listenersMu.Lock()
	t.listeners = append(t.listeners, l)
	t.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.listenersMu.Lock()
			defer t.listenersMu.Unlock()
			for i, existing := range t.listeners {
				if existing == l {
					t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (t *Tree) notify() {
	t.listenersMu.Lock()
	listeners := make([]*listener, len(t.listeners))
	copy(listeners, t.listeners)
	t.listenersMu.Unlock()

	for _, l := range listeners {
		l.fn()
	}
}

// mutate runs fn under the write lock and then notifies observers.
func (t *Tree) mutate(fn func()) {
	t.mu.Lock()
	fn()
	t.mu.Unlock()
	t.notify()
}

// =============================================================================
// MEMBERSHIP
// =============================================================================

// appendNodes appends nodes to parent's children, or to the root when parent
// is nil, as a single mutation. Children are only accepted while the parent's
// function is running.
func (t *Tree) appendNodes(parent *Node, nodes ...*Node) error {
	if len(nodes) == 0 {
		return nil
	}
	if parent != nil {
		t.mu.Lock()
		if !parent.runningLocked() {
			t.mu.Unlock()
			return ErrParentNotRunning
		}
		parent.children.append(nodes...)
		t.mu.Unlock()
		t.notify()
		return nil
	}

	t.lifecycleMu.Lock()
	t.mu.Lock()
	t.root.append(nodes...)
	t.mu.Unlock()
	t.attachLocked()
	t.lifecycleMu.Unlock()

	t.notify()
	return nil
}

// removeNodes removes nodes from parent's children, or from the root when
// parent is nil. Nodes already removed are ignored.
func (t *Tree) removeNodes(parent *Node, nodes ...*Node) {
	if parent != nil {
		t.mu.Lock()
		removed := false
		for _, n := range nodes {
			if parent.children.remove(n) {
				removed = true
			}
		}
		t.mu.Unlock()
		if removed {
			t.notify()
		}
		return
	}

	t.lifecycleMu.Lock()
	t.mu.Lock()
	removed := false
	for _, n := range nodes {
		if t.root.remove(n) {
			removed = true
		}
	}
	empty := len(t.root.nodes) == 0
	t.mu.Unlock()
	if removed && empty {
		t.detachLocked()
	}
	t.lifecycleMu.Unlock()

	if removed {
		t.notify()
	}
}

// attachLocked attaches the renderer if it is not attached yet.
// Caller holds lifecycleMu.
func (t *Tree) attachLocked() {
	if t.renderer == nil || t.attached {
		return
	}
	if err := t.renderer.Attach(t); err != nil {
		t.logger.Printf("tasktree: attach renderer: %v", err)
		return
	}
	t.attached = true
	t.logger.Printf("tasktree: renderer attached")
}

// detachLocked detaches the renderer if attached. Caller holds lifecycleMu.
func (t *Tree) detachLocked() {
	if !t.attached {
		return
	}
	t.renderer.Detach()
	t.attached = false
	t.logger.Printf("tasktree: renderer detached")
}
