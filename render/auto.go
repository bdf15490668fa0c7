// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/tasktree"
)

// Renderer names accepted by ByName.
const (
	NameAuto        = "auto"
	NameInteractive = "tea"
	NamePlain       = "plain"
	NameNone        = "none"
)

// Auto returns a Tea renderer when w is a terminal and a Plain renderer
// otherwise.
func Auto(w io.Writer, opts ...Option) tasktree.Renderer {
	if isTerminal(w) {
		return NewTea(w, opts...)
	}
	return NewPlain(w, opts...)
}

// ByName returns the renderer called name. "none" yields a nil renderer,
// which tasktree.WithRenderer accepts.
func ByName(name string, w io.Writer, opts ...Option) (tasktree.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameAuto:
		return Auto(w, opts...), nil
	case NameInteractive:
		return NewTea(w, opts...), nil
	case NamePlain:
		return NewPlain(w, opts...), nil
	case NameNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("render: unknown renderer %q", name)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
