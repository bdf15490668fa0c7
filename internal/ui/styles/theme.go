// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how a Theme picks its colors.
type Mode string

const (
	// ModeAuto detects the background from the terminal.
	ModeAuto Mode = "auto"
	// ModeDark forces the dark variants of adaptive colors.
	ModeDark Mode = "dark"
	// ModeLight forces the light variants of adaptive colors.
	ModeLight Mode = "light"
	// ModeMono disables colors and uses ASCII indicators.
	ModeMono Mode = "mono"
)

// ParseMode converts a config or flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAuto, ModeDark, ModeLight, ModeMono:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want auto, dark, light or mono)", s)
	}
}

// Theme holds the styles for drawing a task tree on one output.
// It detects the output's color capability and adjusts accordingly.
type Theme struct {
	// Renderer is bound to the theme's output writer
	Renderer *lipgloss.Renderer

	Icons StatusIndicatorSet

	// ==========================================================================
	// STATE STYLES
	// ==========================================================================

	Pending lipgloss.Style
	Loading lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// ==========================================================================
	// ROW STYLES
	// ==========================================================================

	Title       lipgloss.Style
	ParentTitle lipgloss.Style
	Status      lipgloss.Style
	Output      lipgloss.Style
	Duration    lipgloss.Style
	Spinner     lipgloss.Style
}

// NewTheme creates a theme for standard output with automatic detection.
func NewTheme() *Theme {
	return NewThemeFor(os.Stdout, ModeAuto, false)
}

// NewThemeFor creates a theme for w. noColor forces the ASCII profile, as
// NO_COLOR does.
func NewThemeFor(w io.Writer, mode Mode, noColor bool) *Theme {
	r := lipgloss.NewRenderer(w)

	if noColor || mode == ModeMono {
		r.SetColorProfile(termenv.Ascii)
	}
	switch mode {
	case ModeDark:
		r.SetHasDarkBackground(true)
	case ModeLight:
		r.SetHasDarkBackground(false)
	}

	t := &Theme{
		Renderer: r,
		Icons:    UnicodeIndicators,
	}
	if mode == ModeMono {
		t.Icons = ASCIIIndicators
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	r := t.Renderer

	t.Pending = r.NewStyle().Foreground(TextMuted)
	t.Loading = r.NewStyle().Foreground(Cyan)
	t.Success = r.NewStyle().Foreground(Emerald)
	t.Warning = r.NewStyle().Foreground(Amber)
	t.Error = r.NewStyle().Foreground(Rose).Bold(true)

	t.Title = r.NewStyle().Foreground(TextPrimary)
	t.ParentTitle = r.NewStyle().Foreground(TextPrimary).Bold(true)
	t.Status = r.NewStyle().Foreground(TextSecondary)
	t.Output = r.NewStyle().Foreground(TextMuted)
	t.Duration = r.NewStyle().Foreground(TextMuted).Faint(true)
	t.Spinner = r.NewStyle().Foreground(Cyan)
}
