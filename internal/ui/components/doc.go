// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the Bubble Tea model that draws a task tree.

# Components

TaskTree (task_tree.go) - Bubble Tea model holding the latest tree snapshot
and a spinner for loading tasks. It never reads the live tree; renderers feed
it SnapshotMsg and FinalMsg values.

RenderTree (task_tree.go) - Pure function turning snapshots into the text
drawn on screen. Used by the interactive model and by the plain renderer.

Spinner presets (spinner.go) - Named bubbles spinners selectable from config.

# Usage

	model := components.NewTaskTree(theme, components.SpinnerDots)
	p := tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(w))
	go p.Run()
	p.Send(components.SnapshotMsg(tree.Snapshot()))
*/
package components
