// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

import (
	"errors"
	"fmt"

	"github.com/jeranaias/tasktree/internal/mapper"
)

var (
	// ErrNilParent is returned when Task or Group is called without a parent.
	ErrNilParent = errors.New("tasktree: nil parent")

	// ErrNilFunc is returned when a task function is nil.
	ErrNilFunc = errors.New("tasktree: nil task func")

	// ErrNilBuild is returned when Group is called without a build function.
	ErrNilBuild = errors.New("tasktree: nil group build func")

	// ErrInvalidRegistration is returned when a group build function returns
	// a nil, duplicated or foreign registration.
	ErrInvalidRegistration = errors.New("tasktree: invalid group registration")

	// ErrParentNotRunning is returned when Task or Group is called with the
	// API of a task whose function has already returned.
	ErrParentNotRunning = errors.New("tasktree: parent task is not running")

	// ErrRegistrarClosed is the panic value raised when a registrar is used
	// after its build function returned.
	ErrRegistrarClosed = errors.New("tasktree: registrar used after build returned")
)

// AggregateError combines the failures of a group run with
// WithStopOnError(false), in build order.
type AggregateError = mapper.AggregateError

// PanicError reports a group member whose function panicked. The member's
// node is marked as errored before the panic is converted.
type PanicError struct {
	Title string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tasktree: panic in task %q: %v", e.Title, e.Value)
}
