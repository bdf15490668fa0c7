// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasktree reports hierarchical, concurrently running units of work
// as a live tree.
//
// Each task is a function whose lifecycle is tracked on a Node:
//
//	pending -> loading -> success | warning | error
//
// A running task receives an *API to update its title, status and output,
// to flag warnings or errors, and to spawn nested tasks and groups. The tree
// publishes every change through OnChange so a Renderer can redraw it.
//
// # Key Types
//
//   - Tree: root of the hierarchy, change publisher, renderer lifecycle
//   - Node: one task's title, state, status, output and children
//   - API: handed to a running task function
//   - Result / Results: task values plus handles to clear their nodes
//   - Renderer: attached while the root is non-empty
//
// # Usage
//
// Run a top-level task:
//
//	tree := tasktree.New(tasktree.WithRenderer(render.Auto(os.Stderr)))
//	res, err := tasktree.Task(ctx, tree, "build", func(ctx context.Context, api *tasktree.API) (int, error) {
//	    api.SetStatus("compiling")
//	    return 42, nil
//	})
//
// Nest tasks by passing the API as the parent:
//
//	tasktree.Task(ctx, api, "lint", lint)
//
// Run siblings with a concurrency bound; results keep build order:
//
//	results, err := tasktree.Group(ctx, tree, func(task tasktree.Registrar[string]) []*tasktree.Registration[string] {
//	    return []*tasktree.Registration[string]{
//	        task("fetch a", fetchA),
//	        task("fetch b", fetchB),
//	    }
//	}, tasktree.WithConcurrency(2))
//
// Remove finished tasks from the display:
//
//	res.Clear()
//	results.Clear()
//
// Errors returned by a task function mark its node as errored and are
// returned unchanged; ancestors are never marked automatically. Nothing in
// this package cancels a task function once it has started.
package tasktree
