// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasktree

// Output is a message destined for a node's output field. Build one with
// Text or FromError; the zero value means "no message".
type Output struct {
	text string
	set  bool
}

// Text returns an Output carrying s.
func Text(s string) Output {
	return Output{text: s, set: true}
}

// FromError returns an Output carrying err's message, or an empty message
// when err is nil.
func FromError(err error) Output {
	if err == nil {
		return Output{set: true}
	}
	return Output{text: err.Error(), set: true}
}

// IsZero reports whether o carries no message.
func (o Output) IsZero() bool {
	return !o.set
}

// String returns the resolved message.
func (o Output) String() string {
	return o.text
}
