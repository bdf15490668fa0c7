// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render provides tasktree.Renderer implementations for terminals
// and plain output.
//
// # Renderers
//
//   - Tea: redraws the tree in place with Bubble Tea, animating loading tasks
//   - Plain: prints a line per task as it settles, for CI logs and pipes
//   - Auto: picks Tea when the writer is a terminal and Plain otherwise
//
// # Usage
//
//	tree := tasktree.New(tasktree.WithRenderer(render.Auto(os.Stderr)))
//	defer tree.Close()
//
// Renderers work from tree snapshots and never hold the tree lock while
// drawing.
package render
