// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling used to draw task trees.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Cyan - loading tasks and the spinner
  - Emerald - successful tasks
  - Amber - warnings
  - Rose - errors
  - TextMuted - pending tasks, durations and output lines

# Theme System (theme.go)

A Theme is bound to one output writer. Its Lip Gloss renderer detects that
writer's color profile through termenv, so styles degrade to plain text when
output is piped, and NO_COLOR forces the ASCII profile.

	theme := styles.NewThemeFor(os.Stderr, styles.ModeAuto, false)
	line := theme.Success.Render(theme.Icons.Success) + " build"

# Accessibility

Every state has a shape indicator as well as a color. The mono mode swaps the
Unicode figures for ASCII brackets so output stays readable on any terminal.
*/
package styles
