// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Purple - Titles of parent tasks
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Loading tasks, spinner
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Warnings, caution states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - Errors, failed tasks
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Task titles
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Status labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Pending tasks, durations, output lines
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// ACCESSIBILITY: Shapes for colorblind users
// =============================================================================

// StatusIndicatorSet contains shape indicators for task states.
// These symbols provide visual cues beyond color for colorblind accessibility.
type StatusIndicatorSet struct {
	Pending string
	Loading string // shown when no spinner frame is available
	Success string
	Warning string
	Error   string
	Output  string // prefix of the output line under a task
}

// UnicodeIndicators are the figures used on capable terminals.
var UnicodeIndicators = StatusIndicatorSet{
	Pending: "◼",
	Loading: "⠋",
	Success: "✔",
	Warning: "⚠",
	Error:   "✖",
	Output:  "→",
}

// ASCIIIndicators are used in mono mode and when colors are disabled.
var ASCIIIndicators = StatusIndicatorSet{
	Pending: "[ ]",
	Loading: "[>]",
	Success: "[OK]",
	Warning: "[!]",
	Error:   "[X]",
	Output:  "->",
}
