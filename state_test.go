// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StatePending, StateLoading, true},
		{StatePending, StateSuccess, false},
		{StatePending, StateError, false},
		{StateLoading, StateSuccess, true},
		{StateLoading, StateWarning, true},
		{StateLoading, StateError, true},
		{StateLoading, StateLoading, false},
		{StateLoading, StatePending, false},
		{StateSuccess, StateWarning, true},
		{StateSuccess, StateError, true},
		{StateSuccess, StateSuccess, false},
		{StateWarning, StateWarning, true},
		{StateWarning, StateError, true},
		{StateWarning, StateSuccess, false},
		{StateError, StateError, true},
		{StateError, StateWarning, true},
		{StateError, StateLoading, false},
		{StateError, StatePending, false},
		{State("bogus"), StateLoading, false},
	}

	for _, tt := range tests {
		if got := canTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStateIsTerminal(t *testing.T) {
	for _, s := range []State{StateSuccess, StateWarning, StateError} {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []State{StatePending, StateLoading} {
		if s.IsTerminal() {
			t.Errorf("expected %s not to be terminal", s)
		}
	}
}
