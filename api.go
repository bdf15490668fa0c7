// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

// Parent is where a task or group is registered: a *Tree for top-level
// tasks, or the *API of a running task for nested ones.
type Parent interface {
	target() (*Tree, *Node)
}

// API is handed to a task function when its node starts loading. Every
// setter mutates the node and notifies the tree's observers.
//
// The API is also a Parent: Task and Group called with it register children
// of this node.
type API struct {
	node *Node
}

func (a *API) target() (*Tree, *Node) {
	return a.node.tree, a.node
}

// Node returns the node this API drives.
func (a *API) Node() *Node {
	return a.node
}

// SetTitle overwrites the node's title.
func (a *API) SetTitle(title string) {
	a.node.tree.mutate(func() {
		a.node.title = title
	})
}

// SetStatus overwrites the node's status label.
func (a *API) SetStatus(status string) {
	a.node.tree.mutate(func() {
		a.node.status = status
	})
}

// SetOutput overwrites the node's output with the resolved message.
func (a *API) SetOutput(out Output) {
	a.node.tree.mutate(func() {
		a.node.output = out.String()
	})
}

// SetWarning flags the node as warning and, when given, sets its output.
// The flag is advisory: the function keeps running and its eventual success
// does not overwrite the warning.
func (a *API) SetWarning(out ...Output) {
	a.flag(StateWarning, out)
}

// SetError flags the node as errored and, when given, sets its output.
// Like SetWarning it does not stop the function; returning an error is what
// fails a task.
func (a *API) SetError(out ...Output) {
	a.flag(StateError, out)
}

func (a *API) flag(state State, out []Output) {
	a.node.tree.mutate(func() {
		a.node.setStateLocked(state)
		if len(out) > 0 && !out[len(out)-1].IsZero() {
			a.node.output = out[len(out)-1].String()
		}
	})
}
