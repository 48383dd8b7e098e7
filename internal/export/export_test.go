// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/mcp-console/internal/commands"
)

var (
	started  = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	exported = time.Date(2025, 3, 14, 16, 30, 0, 0, time.UTC)
)

func sampleHistory() []commands.HistoryItem {
	return []commands.HistoryItem{
		{
			Command:   "status network",
			Timestamp: started.Add(time.Second),
			Response: commands.Success("Network systems operating at optimal efficiency.", commands.Payload{
				"network": map[string]any{"status": "optimal", "activeNodes": 42},
			}),
		},
		{
			Command:   "frobnicate",
			Timestamp: started.Add(2 * time.Second),
			Response:  commands.Error(`Unknown command: "frobnicate"`, nil),
		},
		{
			Command:   "macro run ghost",
			Timestamp: started.Add(3 * time.Second),
			Response:  commands.Warning(`No macro found with name: "ghost"`, commands.Payload{"macros": []string{}}),
		},
	}
}

func sampleTranscript() *Transcript {
	return FromHistory("sess_20250314_150000", started, sampleHistory(), exported)
}

func TestFromHistory(t *testing.T) {
	tr := sampleTranscript()

	_, err := uuid.Parse(tr.ID)
	assert.NoError(t, err, "transcript id is a uuid")
	assert.Equal(t, started, tr.CreatedAt)
	require.Len(t, tr.Entries, 3)
	assert.Equal(t, 1, tr.Entries[0].Index)
	assert.Equal(t, "frobnicate", tr.Entries[1].Command)
	assert.Equal(t, commands.StatusError, tr.Entries[1].Status)

	counts := tr.Counts()
	assert.Equal(t, 1, counts[commands.StatusSuccess])
	assert.Equal(t, 1, counts[commands.StatusWarning])
	assert.Equal(t, 1, counts[commands.StatusError])
}

func TestFromHistoryDefaultsCreatedAt(t *testing.T) {
	tr := FromHistory("s", time.Time{}, sampleHistory(), exported)
	assert.Equal(t, started.Add(time.Second), tr.CreatedAt)
}

func TestJSONExport(t *testing.T) {
	data, err := NewJSONExporter().Export(sampleTranscript())
	require.NoError(t, err)

	var decoded struct {
		SessionID string `json:"sessionId"`
		Entries   []struct {
			Command string         `json:"command"`
			Status  string         `json:"status"`
			Data    map[string]any `json:"data"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "sess_20250314_150000", decoded.SessionID)
	require.Len(t, decoded.Entries, 3)
	assert.Equal(t, "success", decoded.Entries[0].Status)
	assert.Contains(t, decoded.Entries[0].Data, "network")
	assert.Nil(t, decoded.Entries[1].Data)
}

func TestYAMLExport(t *testing.T) {
	data, err := NewYAMLExporter().Export(sampleTranscript())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "sess_20250314_150000", decoded["sessionId"])
	entries, ok := decoded["entries"].([]any)
	require.True(t, ok)
	assert.Len(t, entries, 3)
	assert.Contains(t, string(data), "command: status network")
}

func TestMarkdownExport(t *testing.T) {
	data, err := NewMarkdownExporter(nil).Export(sampleTranscript())
	require.NoError(t, err)
	md := string(data)

	assert.True(t, strings.HasPrefix(md, "---\n"))
	assert.Contains(t, md, "session: sess_20250314_150000")
	assert.Contains(t, md, "commands: 3")
	assert.Contains(t, md, "### 1. `status network` <sub>15:00:01</sub>")
	assert.Contains(t, md, "**[FAIL]**: Unknown command: \"frobnicate\"")
	assert.Contains(t, md, "```json\n{\n  \"network\"")
	assert.Contains(t, md, "*Exported from mcp on March 14, 2025 at 4:30 PM*")
}

func TestMarkdownExportOptions(t *testing.T) {
	opts := &Options{}
	data, err := NewMarkdownExporter(opts).Export(sampleTranscript())
	require.NoError(t, err)
	md := string(data)

	assert.False(t, strings.HasPrefix(md, "---\n"), "no frontmatter")
	assert.NotContains(t, md, "<sub>")
	assert.NotContains(t, md, "```json")
	assert.Contains(t, md, "### 2. `frobnicate`\n")
}

func TestMarkdownRejectsEmpty(t *testing.T) {
	_, err := NewMarkdownExporter(nil).Export(FromHistory("s", started, nil, exported))
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"json", ".json"},
		{"JSON", ".json"},
		{"markdown", ".md"},
		{"md", ".md"},
		{"yaml", ".yaml"},
		{" yml ", ".yaml"},
	}
	for _, tc := range tests {
		exp, err := ForFormat(tc.format, nil)
		if err != nil {
			t.Errorf("ForFormat(%q) error = %v", tc.format, err)
			continue
		}
		if got := exp.FileExtension(); got != tc.ext {
			t.Errorf("ForFormat(%q).FileExtension() = %q, want %q", tc.format, got, tc.ext)
		}
	}

	_, err := ForFormat("html", nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir

	path, err := ExportFormat(sampleTranscript(), "yaml", opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mcp_sess_20250314_150000_20250314_163000.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frobnicate")

	_, err = ExportFormat(sampleTranscript(), "pdf", opts)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ExportToFile(nil, NewJSONExporter(), opts)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"sess_1":       "sess_1",
		"a/b:c":        "a-b-c",
		"two words":    "two_words",
		"":             "session",
		"tab\there":    "tab_here",
		"ctrl\x01char": "ctrl-char",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
