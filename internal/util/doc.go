// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides helpers shared by the renderers and the CLI.
//
// # Key Functions
//
// Display Text:
//   - Normalize: NFC normalisation so composed and decomposed text measure alike
//   - Width: terminal column width of a string
//   - Truncate: width-aware truncation with an ellipsis
//   - FirstLine: first line of a multi-line message
//
// Durations:
//   - FormatDuration: compact elapsed time for task rows
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	title := util.Truncate(node.Title, width-4)
//	elapsed := util.FormatDuration(node.Duration())
package util
