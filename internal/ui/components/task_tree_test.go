// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tasktree"
	"github.com/jeranaias/tasktree/internal/ui/styles"
)

func monoTheme() *styles.Theme {
	return styles.NewThemeFor(&bytes.Buffer{}, styles.ModeMono, true)
}

func sampleTree() []tasktree.Snapshot {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return []tasktree.Snapshot{
		{
			Title:      "build",
			State:      tasktree.StateSuccess,
			StartedAt:  start,
			FinishedAt: start.Add(1500 * time.Millisecond),
			Children: []tasktree.Snapshot{
				{Title: "lint", State: tasktree.StateWarning, Output: "2 issues\nsecond line"},
			},
		},
		{Title: "test", State: tasktree.StatePending, Status: "queued"},
		{Title: "deploy", State: tasktree.StateLoading},
	}
}

// =============================================================================
// RENDER TREE
// =============================================================================

func TestRenderTree(t *testing.T) {
	got := RenderTree(sampleTree(), RenderOptions{Theme: monoTheme(), ShowDuration: true})

	want := strings.Join([]string{
		"[OK] build (1.5s)",
		"  [!] lint",
		"    -> 2 issues",
		"[ ] test [queued]",
		"[>] deploy",
	}, "\n")
	require.Equal(t, want, got)
}

func TestRenderTreeWithoutDuration(t *testing.T) {
	got := RenderTree(sampleTree()[:1], RenderOptions{Theme: monoTheme()})
	require.True(t, strings.HasPrefix(got, "[OK] build\n"), got)
}

func TestRenderTreeDurationOnlyWhenSettled(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	nodes := []tasktree.Snapshot{
		{Title: "lint", State: tasktree.StateWarning, StartedAt: start},
		{Title: "test", State: tasktree.StateWarning, StartedAt: start, FinishedAt: start.Add(2 * time.Second)},
	}

	got := RenderTree(nodes, RenderOptions{Theme: monoTheme(), ShowDuration: true})
	require.Equal(t, "[!] lint\n[!] test (2.0s)", got)
}

func TestRenderTreeSpinnerFrame(t *testing.T) {
	got := RenderTree(sampleTree()[2:], RenderOptions{Theme: monoTheme(), SpinnerFrame: "*"})
	require.Equal(t, "* deploy", got)
}

func TestRenderTreeTruncatesToWidth(t *testing.T) {
	nodes := []tasktree.Snapshot{
		{Title: "a very long task title that overflows", State: tasktree.StateSuccess},
	}

	got := RenderTree(nodes, RenderOptions{Theme: monoTheme(), Width: 20})
	require.Equal(t, "[OK] a very long ...", got)
}

func TestRenderTreeTruncatesOutputToWidth(t *testing.T) {
	nodes := []tasktree.Snapshot{
		{Title: "x", State: tasktree.StateSuccess, Output: "abcdefghijklmnopqrstuvwxyz"},
	}

	got := RenderTree(nodes, RenderOptions{Theme: monoTheme(), Width: 12})
	require.Equal(t, "[OK] x\n  -> abcd...", got)
}

func TestRenderRowSkipsChildren(t *testing.T) {
	got := RenderRow(sampleTree()[0], 1, RenderOptions{Theme: monoTheme()})
	require.Equal(t, "  [OK] build", got)
}

func TestRenderTreeErrorOutput(t *testing.T) {
	nodes := []tasktree.Snapshot{
		{Title: "deploy", State: tasktree.StateError, Output: "boom"},
	}

	got := RenderTree(nodes, RenderOptions{Theme: monoTheme()})
	require.Equal(t, "[X] deploy\n  -> boom", got)
}

// =============================================================================
// MODEL
// =============================================================================

func TestTaskTreeModel(t *testing.T) {
	var model tea.Model = NewTaskTree(monoTheme(), SpinnerLine)
	require.Empty(t, model.View())

	model, cmd := model.Update(SnapshotMsg(sampleTree()))
	require.Nil(t, cmd)
	require.Len(t, model.(TaskTree).Nodes(), 3)

	view := model.View()
	require.True(t, strings.HasSuffix(view, "\n"))
	require.Contains(t, view, "| deploy", "loading rows use the spinner frame")

	model, _ = model.Update(tea.WindowSizeMsg{Width: 16, Height: 10})
	require.Contains(t, model.View(), "[ ] tes [queued]")

	model, cmd = model.Update(FinalMsg(sampleTree()[:1]))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.True(t, model.(TaskTree).Final())
	require.Len(t, model.(TaskTree).Nodes(), 1)
}

func TestParseSpinnerKind(t *testing.T) {
	for _, name := range []string{"dots", "line", "pulse", "points"} {
		kind, err := ParseSpinnerKind(name)
		require.NoError(t, err)
		require.Equal(t, SpinnerKind(name), kind)
	}

	kind, err := ParseSpinnerKind("")
	require.NoError(t, err)
	require.Equal(t, SpinnerDots, kind)

	_, err = ParseSpinnerKind("comet")
	require.Error(t, err)
}

func TestSpinnerFramesASCII(t *testing.T) {
	require.Equal(t, []string{"|", "/", "-", "\\"}, SpinnerDots.frames(true).Frames)
	require.NotEqual(t, SpinnerLine.frames(false).Frames, SpinnerDots.frames(false).Frames)
}
