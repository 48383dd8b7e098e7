// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/mcp-console/internal/commands"
	"github.com/jeranaias/mcp-console/internal/telemetry"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status commands.Status
		want   string
	}{
		{commands.StatusSuccess, Success.Dark},
		{commands.StatusInfo, Cyan.Dark},
		{commands.StatusWarning, Warning.Dark},
		{commands.StatusError, Danger.Dark},
	}
	for _, tc := range tests {
		if got := StatusColor(tc.status).Dark; got != tc.want {
			t.Errorf("StatusColor(%s) = %s, want %s", tc.status, got, tc.want)
		}
	}
}

func TestStatusIndicator(t *testing.T) {
	if got := StatusIndicator(commands.StatusError); got != "[X]" {
		t.Errorf("StatusIndicator(error) = %q", got)
	}
	if got := StatusIndicator(commands.StatusInfo); got != "[i]" {
		t.Errorf("StatusIndicator(info) = %q", got)
	}
}

func TestLevelColor(t *testing.T) {
	if LevelColor(telemetry.LevelOf(85)) != Danger {
		t.Error("85% should be danger")
	}
	if LevelColor(telemetry.LevelOf(65)) != Warning {
		t.Error("65% should be warning")
	}
	if LevelColor(telemetry.LevelOf(10)) != Success {
		t.Error("10% should be success")
	}
}

func TestRenderStatusKeepsText(t *testing.T) {
	out := RenderWarning("Already recording")
	if !strings.Contains(out, "[!] Already recording") {
		t.Errorf("RenderWarning = %q", out)
	}
}

func TestThemeModes(t *testing.T) {
	if !NewTheme("dark").IsDark {
		t.Error("dark theme should be dark")
	}
	if NewTheme("light").IsDark {
		t.Error("light theme should not be dark")
	}
}

func TestLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{79, LayoutNarrow},
		{80, LayoutMedium},
		{119, LayoutMedium},
		{120, LayoutWide},
	}
	th := NewTheme("dark")
	for _, tc := range tests {
		th.SetSize(tc.width, 40)
		if got := th.GetLayoutMode(); got != tc.want {
			t.Errorf("GetLayoutMode(width=%d) = %v, want %v", tc.width, got, tc.want)
		}
	}
}
