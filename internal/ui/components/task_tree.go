// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tasktree"
	"github.com/jeranaias/tasktree/internal/ui/styles"
	"github.com/jeranaias/tasktree/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SnapshotMsg replaces the tree drawn by the model.
type SnapshotMsg []tasktree.Snapshot

// FinalMsg draws the last frame and quits the program.
type FinalMsg []tasktree.Snapshot

// =============================================================================
// TASK TREE MODEL
// =============================================================================

// TaskTree is a Bubble Tea model drawing the latest snapshot of a task tree.
type TaskTree struct {
	theme   *styles.Theme
	spinner spinner.Model

	nodes        []tasktree.Snapshot
	width        int
	showDuration bool
	final        bool
}

// NewTaskTree creates the model. Loading tasks animate with kind.
func NewTaskTree(theme *styles.Theme, kind SpinnerKind) TaskTree {
	s := spinner.New(
		spinner.WithSpinner(kind.frames(theme.Icons == styles.ASCIIIndicators)),
		spinner.WithStyle(theme.Spinner),
	)
	return TaskTree{theme: theme, spinner: s, showDuration: true}
}

// SetWidth sets the width rows are truncated to. Zero disables truncation.
func (m *TaskTree) SetWidth(width int) {
	m.width = width
}

// SetShowDuration toggles elapsed times on settled rows.
func (m *TaskTree) SetShowDuration(show bool) {
	m.showDuration = show
}

// Nodes returns the snapshot currently drawn.
func (m TaskTree) Nodes() []tasktree.Snapshot {
	return m.nodes
}

// Final reports whether the model has drawn its last frame.
func (m TaskTree) Final() bool {
	return m.final
}

// Init starts the spinner.
func (m TaskTree) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles snapshots, resizes and spinner ticks.
func (m TaskTree) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.nodes = msg
		return m, nil

	case FinalMsg:
		m.nodes = msg
		m.final = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.final {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the tree. The trailing newline keeps the last row on screen
// when the program exits.
func (m TaskTree) View() string {
	if len(m.nodes) == 0 {
		return ""
	}
	return RenderTree(m.nodes, RenderOptions{
		Theme:        m.theme,
		SpinnerFrame: m.spinner.View(),
		Width:        m.width,
		ShowDuration: m.showDuration,
	}) + "\n"
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderOptions controls RenderTree.
type RenderOptions struct {
	Theme *styles.Theme

	// SpinnerFrame replaces the loading icon. Empty uses the static icon.
	SpinnerFrame string

	// Width truncates titles and outputs to fit. Zero disables truncation.
	Width int

	// ShowDuration appends the elapsed time to settled tasks.
	ShowDuration bool
}

// RenderTree draws nodes and their descendants, one row per node plus an
// output row under nodes that have output.
func RenderTree(nodes []tasktree.Snapshot, opts RenderOptions) string {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	var b strings.Builder
	for _, n := range nodes {
		renderNode(&b, n, 0, opts)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderRow draws a single node without its children.
func RenderRow(n tasktree.Snapshot, depth int, opts RenderOptions) string {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	var b strings.Builder
	writeRow(&b, n, depth, opts)
	return strings.TrimSuffix(b.String(), "\n")
}

func renderNode(b *strings.Builder, n tasktree.Snapshot, depth int, opts RenderOptions) {
	writeRow(b, n, depth, opts)
	for _, child := range n.Children {
		renderNode(b, child, depth+1, opts)
	}
}

func writeRow(b *strings.Builder, n tasktree.Snapshot, depth int, opts RenderOptions) {
	theme := opts.Theme
	indent := util.Indent(depth)
	icon := stateIcon(n.State, opts)

	var suffix strings.Builder
	if n.Status != "" {
		suffix.WriteString(" ")
		suffix.WriteString(theme.Status.Render("[" + n.Status + "]"))
	}
	if opts.ShowDuration && n.Settled() {
		if d := util.FormatDuration(n.Duration()); d != "" {
			suffix.WriteString(" ")
			suffix.WriteString(theme.Duration.Render("(" + d + ")"))
		}
	}

	title := n.Title
	if opts.Width > 0 {
		// icon and suffix carry escape codes; lipgloss.Width skips them.
		used := util.Width(indent) + lipgloss.Width(icon) + 1 + lipgloss.Width(suffix.String())
		title = util.Truncate(title, max(opts.Width-used, 1))
	}
	titleStyle := theme.Title
	if len(n.Children) > 0 {
		titleStyle = theme.ParentTitle
	}

	b.WriteString(indent)
	b.WriteString(icon)
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(title))
	b.WriteString(suffix.String())
	b.WriteString("\n")

	if n.Output == "" {
		return
	}
	outIndent := util.Indent(depth + 1)
	line := util.FirstLine(n.Output)
	if opts.Width > 0 {
		used := util.Width(outIndent) + util.Width(theme.Icons.Output) + 1
		line = util.Truncate(line, max(opts.Width-used, 1))
	}
	b.WriteString(outIndent)
	b.WriteString(outputStyle(n.State, theme).Render(theme.Icons.Output + " " + line))
	b.WriteString("\n")
}

// stateIcon returns the colored indicator for a state (ASCII-compatible in
// mono mode).
func stateIcon(state tasktree.State, opts RenderOptions) string {
	theme := opts.Theme
	switch state {
	case tasktree.StateLoading:
		if opts.SpinnerFrame != "" {
			return opts.SpinnerFrame
		}
		return theme.Loading.Render(theme.Icons.Loading)
	case tasktree.StateSuccess:
		return theme.Success.Render(theme.Icons.Success)
	case tasktree.StateWarning:
		return theme.Warning.Render(theme.Icons.Warning)
	case tasktree.StateError:
		return theme.Error.Render(theme.Icons.Error)
	default:
		return theme.Pending.Render(theme.Icons.Pending)
	}
}

// outputStyle colors output lines of flagged tasks like their icon.
func outputStyle(state tasktree.State, theme *styles.Theme) lipgloss.Style {
	switch state {
	case tasktree.StateWarning:
		return theme.Warning
	case tasktree.StateError:
		return theme.Error.UnsetBold()
	default:
		return theme.Output
	}
}
