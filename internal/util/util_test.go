// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	data := []byte(`{"status":"success"}`)

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mcp", "exports", "session.md")

	if err := AtomicWriteFile(path, []byte("# Session"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "updated" {
		t.Errorf("Content not updated: got %q", content)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".mcp-tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteFileWithDir(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "private")
	path := filepath.Join(parent, "history")

	if err := AtomicWriteFileWithDir(path, nil, 0600, 0700); err != nil {
		t.Fatalf("AtomicWriteFileWithDir failed: %v", err)
	}

	info, err := os.Stat(parent)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", parent)
	}
	fileInfo, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fileInfo.Size() != 0 {
		t.Errorf("Size = %d, want 0", fileInfo.Size())
	}
}

// =============================================================================
// WIDTH TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"status", 6},
		{"日本語", 6},
		{"héllo", 5},
	}
	for _, tc := range tests {
		if got := StringWidth(tc.in); got != tc.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"network optimize", 0, ""},
		{"network optimize", 20, "network optimize"},
		{"network optimize", 16, "network optimize"},
		{"network optimize", 10, "network..."},
		{"network", 3, "net"},
		{"日本語テキスト", 7, "日本..."},
		{"日本語", 5, "日..."},
		{"日本語", 3, "日"},
	}
	for _, tc := range tests {
		got := TruncateWidth(tc.in, tc.width)
		if got != tc.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
		if StringWidth(got) > tc.width && tc.width > 0 {
			t.Errorf("TruncateWidth(%q, %d) is %d cells wide", tc.in, tc.width, StringWidth(got))
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"cpu", 6, "cpu   "},
		{"security scan", 8, "secur..."},
		{"日本", 5, "日本 "},
		{"x", 0, ""},
	}
	for _, tc := range tests {
		if got := PadRight(tc.in, tc.width); got != tc.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("one\ntwo"); got != "one" {
		t.Errorf("FirstLine = %q, want %q", got, "one")
	}
	if got := FirstLine("single"); got != "single" {
		t.Errorf("FirstLine = %q, want %q", got, "single")
	}
}

// =============================================================================
// CONVERT TESTS
// =============================================================================

func TestConvert(t *testing.T) {
	if got := IntToString(-42); got != "-42" {
		t.Errorf("IntToString(-42) = %q", got)
	}
	if got := Int64ToString(1 << 40); got != "1099511627776" {
		t.Errorf("Int64ToString = %q", got)
	}
	if got := FloatToStringPrec(12.7, 1); got != "12.7" {
		t.Errorf("FloatToStringPrec = %q", got)
	}
	if got := Percent(63); got != "63%" {
		t.Errorf("Percent(63) = %q", got)
	}
}
