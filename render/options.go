// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"io"
	"log"

	"github.com/jeranaias/tasktree/internal/ui/components"
	"github.com/jeranaias/tasktree/internal/ui/styles"
)

// DefaultFPS is the repaint rate used when none is configured.
const DefaultFPS = 12

// Option configures a renderer.
type Option func(*options)

type options struct {
	theme        string
	noColor      bool
	spinner      string
	fps          int
	width        int
	showDuration bool
	logger       *log.Logger
}

func defaultOptions() options {
	return options{
		theme:        string(styles.ModeAuto),
		spinner:      string(components.SpinnerDots),
		fps:          DefaultFPS,
		showDuration: true,
		logger:       log.New(io.Discard, "", 0),
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithTheme selects the color theme: "auto", "dark", "light" or "mono".
// noColor strips colors while keeping the Unicode figures.
func WithTheme(name string, noColor bool) Option {
	return func(o *options) {
		o.theme = name
		o.noColor = noColor
	}
}

// WithSpinner selects the loading animation: "dots", "line", "pulse" or
// "points".
func WithSpinner(name string) Option {
	return func(o *options) {
		o.spinner = name
	}
}

// WithFPS caps how many times a second the interactive renderer repaints.
// Values below 1 keep the default.
func WithFPS(fps int) Option {
	return func(o *options) {
		if fps > 0 {
			o.fps = fps
		}
	}
}

// WithWidth truncates rows to width columns. Zero disables truncation, or
// for Tea, uses the terminal width.
func WithWidth(width int) Option {
	return func(o *options) {
		o.width = width
	}
}

// WithDuration toggles elapsed times on settled tasks.
func WithDuration(show bool) Option {
	return func(o *options) {
		o.showDuration = show
	}
}

// WithLogger sets the logger for renderer failures.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// themeFor builds the theme for w, falling back to automatic detection for an
// unknown name.
func (o options) themeFor(w io.Writer) *styles.Theme {
	mode, err := styles.ParseMode(o.theme)
	if err != nil {
		o.logger.Printf("render: %v, using auto", err)
		mode = styles.ModeAuto
	}
	return styles.NewThemeFor(w, mode, o.noColor)
}

func (o options) spinnerKind() components.SpinnerKind {
	kind, err := components.ParseSpinnerKind(o.spinner)
	if err != nil {
		o.logger.Printf("render: %v, using dots", err)
		return components.SpinnerDots
	}
	return kind
}
