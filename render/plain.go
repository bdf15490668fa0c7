// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/jeranaias/tasktree"
	"github.com/jeranaias/tasktree/internal/ui/components"
	"github.com/jeranaias/tasktree/internal/ui/styles"
)

// =============================================================================
// PLAIN RENDERER
// =============================================================================

// Plain writes one line per task as it settles and never moves the cursor.
// It suits pipes, CI logs and dumb terminals. On detach it prints the tree
// once more if anything is left in it.
type Plain struct {
	out  io.Writer
	opts options

	mu          sync.Mutex
	tree        *tasktree.Tree
	theme       *styles.Theme
	printed     map[string]tasktree.State
	unsubscribe func()
}

// NewPlain creates a Plain renderer writing to w.
func NewPlain(w io.Writer, opts ...Option) *Plain {
	return &Plain{out: w, opts: newOptions(opts)}
}

// Attach starts printing settled tasks of tree.
func (r *Plain) Attach(tree *tasktree.Tree) error {
	r.mu.Lock()
	if r.tree != nil {
		r.mu.Unlock()
		return ErrAlreadyAttached
	}
	r.tree = tree
	r.theme = r.opts.themeFor(r.out)
	r.printed = make(map[string]tasktree.State)
	r.mu.Unlock()

	unsubscribe := tree.OnChange(r.flush)

	r.mu.Lock()
	r.unsubscribe = unsubscribe
	r.mu.Unlock()
	return nil
}

// Detach stops printing and writes a summary of what remains in the tree.
func (r *Plain) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tree == nil {
		return
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
	}

	nodes := r.tree.Snapshot()
	if len(nodes) > 0 {
		fmt.Fprintln(r.out, components.RenderTree(nodes, r.renderOptions()))
	}

	r.tree = nil
	r.unsubscribe = nil
	r.printed = nil
}

// flush prints rows for nodes whose function returned since the last call.
// A settled node whose state changes afterwards, such as a warning becoming
// an error, is printed again.
func (r *Plain) flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tree == nil {
		return
	}
	opts := r.renderOptions()
	r.walk(r.tree.Snapshot(), 0, opts)
}

func (r *Plain) walk(nodes []tasktree.Snapshot, depth int, opts components.RenderOptions) {
	for _, n := range nodes {
		if n.Settled() && r.printed[n.ID] != n.State {
			r.printed[n.ID] = n.State
			fmt.Fprintln(r.out, components.RenderRow(n, depth, opts))
		}
		r.walk(n.Children, depth+1, opts)
	}
}

func (r *Plain) renderOptions() components.RenderOptions {
	return components.RenderOptions{
		Theme:        r.theme,
		Width:        r.opts.width,
		ShowDuration: r.opts.showDuration,
	}
}
