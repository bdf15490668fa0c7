// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

import "log"

// Unlimited removes the concurrency bound of a group.
const Unlimited = 0

// Option configures a Tree.
type Option func(*Tree)

// WithRenderer sets the renderer attached while the root is non-empty.
// A nil renderer disables rendering.
func WithRenderer(r Renderer) Option {
	return func(t *Tree) {
		t.renderer = r
	}
}

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithDefaultConcurrency sets the concurrency used by groups that do not pass
// WithConcurrency. Unlimited (0) removes the bound.
func WithDefaultConcurrency(limit int) Option {
	if limit < 0 {
		panic("tasktree: concurrency cannot be negative")
	}
	return func(t *Tree) {
		t.defaults.concurrency = limit
	}
}

// WithDefaultStopOnError sets the error policy used by groups that do not
// pass WithStopOnError.
func WithDefaultStopOnError(enabled bool) Option {
	return func(t *Tree) {
		t.defaults.stopOnError = enabled
	}
}

// =============================================================================
// GROUP OPTIONS
// =============================================================================

// GroupOption configures a single Group call.
type GroupOption func(*groupConfig)

type groupConfig struct {
	concurrency int
	stopOnError bool
}

func defaultGroupConfig() groupConfig {
	return groupConfig{
		concurrency: 1,
		stopOnError: true,
	}
}

// WithConcurrency bounds how many group members run at the same time.
// Unlimited (0) removes the bound.
func WithConcurrency(limit int) GroupOption {
	if limit < 0 {
		panic("tasktree: concurrency cannot be negative")
	}
	return func(c *groupConfig) {
		c.concurrency = limit
	}
}

// WithStopOnError selects the group's error policy. When enabled (the
// default) the first failure stops members that have not started yet. When
// disabled every member runs and failures are returned as an
// *AggregateError.
func WithStopOnError(enabled bool) GroupOption {
	return func(c *groupConfig) {
		c.stopOnError = enabled
	}
}
