// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"dark", ModeDark, false},
		{"light", ModeLight, false},
		{"mono", ModeMono, false},
		{"neon", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewThemeForBufferIsPlain(t *testing.T) {
	var buf bytes.Buffer
	theme := NewThemeFor(&buf, ModeAuto, false)

	if theme.Renderer.ColorProfile() != termenv.Ascii {
		t.Errorf("ColorProfile = %v, want Ascii for a non-terminal writer", theme.Renderer.ColorProfile())
	}
	if got := theme.Success.Render("done"); strings.Contains(got, "\x1b[") {
		t.Errorf("Success.Render emitted escape codes: %q", got)
	}
}

func TestNewThemeForForcedBackground(t *testing.T) {
	var buf bytes.Buffer

	if theme := NewThemeFor(&buf, ModeDark, false); !theme.Renderer.HasDarkBackground() {
		t.Error("ModeDark should report a dark background")
	}
	if theme := NewThemeFor(&buf, ModeLight, false); theme.Renderer.HasDarkBackground() {
		t.Error("ModeLight should report a light background")
	}
}

func TestNewThemeForMonoUsesASCII(t *testing.T) {
	var buf bytes.Buffer
	theme := NewThemeFor(&buf, ModeMono, false)

	if theme.Icons != ASCIIIndicators {
		t.Errorf("Icons = %+v, want ASCII indicators", theme.Icons)
	}
	if theme.Renderer.ColorProfile() != termenv.Ascii {
		t.Errorf("ColorProfile = %v, want Ascii", theme.Renderer.ColorProfile())
	}
}

func TestNewThemeForNoColor(t *testing.T) {
	var buf bytes.Buffer
	theme := NewThemeFor(&buf, ModeDark, true)

	if theme.Renderer.ColorProfile() != termenv.Ascii {
		t.Errorf("ColorProfile = %v, want Ascii with NO_COLOR", theme.Renderer.ColorProfile())
	}
	if theme.Icons != UnicodeIndicators {
		t.Error("NO_COLOR alone should keep the Unicode figures")
	}
}
