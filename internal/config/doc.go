// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the tasktree CLI.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - RenderConfig: Renderer selection and repaint rate
//   - GroupConfig: Default concurrency and error policy for task groups
//   - UIConfig: Theme, spinner and color settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TASKTREE_*, NO_COLOR)
//   - .env in the working directory (never overrides set variables)
//   - ~/.tasktree/config.toml
//   - ~/.tasktree/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("config: %v (using defaults)", err)
//	}
//	limit := cfg.Group.Concurrency
package config
