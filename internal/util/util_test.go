// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "build", 10, "build"},
		{"exact", "build", 5, "build"},
		{"ascii cut", "compile everything", 10, "compile..."},
		{"no limit", "compile everything", 0, "compile everything"},
		{"tiny limit", "compile", 2, "co"},
		{"cjk counts double", "日本語のタスク", 7, "日本..."},
		{"decomposed accent", "cafe\u0301 au lait", 7, "caf\u00e9..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	if got := Width("abc"); got != 3 {
		t.Errorf("Width(abc) = %d, want 3", got)
	}
	if got := Width("日本"); got != 4 {
		t.Errorf("Width(日本) = %d, want 4", got)
	}
	if got := Width("e\u0301"); got != 1 {
		t.Errorf("Width(decomposed e) = %d, want 1", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("one\r\ntwo"); got != "one" {
		t.Errorf("FirstLine = %q, want %q", got, "one")
	}
	if got := FirstLine("single"); got != "single" {
		t.Errorf("FirstLine = %q, want %q", got, "single")
	}
}

func TestIndent(t *testing.T) {
	if got := Indent(0); got != "" {
		t.Errorf("Indent(0) = %q", got)
	}
	if got := Indent(2); got != "    " {
		t.Errorf("Indent(2) = %q", got)
	}
}

// =============================================================================
// DURATION TESTS
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, ""},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{75 * time.Second, "1m15s"},
		{2*time.Hour + 5*time.Minute, "2h5m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := AtomicWriteFile(path, []byte("a = 1\n"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "a = 1\n" {
		t.Errorf("Content mismatch: got %q", content)
	}
}

func TestAtomicWriteFile_OverwritesWithoutTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := AtomicWriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "new" {
		t.Errorf("Content = %q, want %q", content, "new")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
}
