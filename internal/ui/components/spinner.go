// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER PRESETS
// =============================================================================

// SpinnerKind names one of the spinner animations used for loading tasks.
type SpinnerKind string

const (
	SpinnerDots   SpinnerKind = "dots"   // Braille dots
	SpinnerLine   SpinnerKind = "line"   // Line rotation, ASCII only
	SpinnerPulse  SpinnerKind = "pulse"  // ASCII pulsing circle
	SpinnerPoints SpinnerKind = "points" // Three bouncing points
)

// ParseSpinnerKind converts a config value into a SpinnerKind.
func ParseSpinnerKind(s string) (SpinnerKind, error) {
	switch k := SpinnerKind(s); k {
	case SpinnerDots, SpinnerLine, SpinnerPulse, SpinnerPoints:
		return k, nil
	case "":
		return SpinnerDots, nil
	default:
		return "", fmt.Errorf("unknown spinner %q (want dots, line, pulse or points)", s)
	}
}

// frames returns the animation for kind. ascii restricts the choice to
// ASCII-safe frames.
func (k SpinnerKind) frames(ascii bool) spinner.Spinner {
	if ascii && k != SpinnerPulse {
		k = SpinnerLine
	}
	switch k {
	case SpinnerLine:
		return spinner.Spinner{
			Frames: []string{"|", "/", "-", "\\"},
			FPS:    time.Second / 10,
		}
	case SpinnerPulse:
		return spinner.Spinner{
			Frames: []string{"( )", "(o)", "(O)", "(o)"},
			FPS:    time.Second / 8,
		}
	case SpinnerPoints:
		return spinner.Points
	default:
		return spinner.MiniDot
	}
}
