// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

// =============================================================================
// TASK STATE
// =============================================================================

// State is the lifecycle stage of a task node.
type State string

const (
	// StatePending indicates the node is registered but its function has not started
	StatePending State = "pending"

	// StateLoading indicates the node's function is running
	StateLoading State = "loading"

	// StateSuccess indicates the function returned without error
	StateSuccess State = "success"

	// StateWarning indicates the function flagged a warning
	StateWarning State = "warning"

	// StateError indicates the function failed or flagged an error
	StateError State = "error"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether the state is one a settled node can be in.
func (s State) IsTerminal() bool {
	switch s {
	case StateSuccess, StateWarning, StateError:
		return true
	default:
		return false
	}
}

// canTransition reports whether a node may move from one state to another.
//
// Valid transitions:
//
//	pending -> loading
//	loading -> success | warning | error
//	success | warning | error -> warning | error
//
// A node never returns to pending or loading, and success is only reachable
// from loading.
func canTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateLoading
	case StateLoading:
		return to.IsTerminal()
	case StateSuccess, StateWarning, StateError:
		return to == StateWarning || to == StateError
	default:
		return false
	}
}
