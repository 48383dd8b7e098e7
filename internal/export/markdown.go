// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/mcp-console/internal/commands"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown with YAML frontmatter.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

type frontmatter struct {
	Title     string `yaml:"title"`
	ID        string `yaml:"id"`
	Session   string `yaml:"session"`
	Date      string `yaml:"date"`
	Exported  string `yaml:"exported"`
	Commands  int    `yaml:"commands"`
	Warnings  int    `yaml:"warnings"`
	Errors    int    `yaml:"errors"`
	Generator string `yaml:"generator"`
}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil {
		return nil, errors.New("transcript is nil")
	}
	if len(t.Entries) == 0 {
		return nil, errors.New("transcript has no entries")
	}

	var sb strings.Builder
	title := "MCP Session " + t.SessionID
	counts := t.Counts()

	if e.options.IncludeMetadata {
		fm, err := yaml.Marshal(frontmatter{
			Title:     title,
			ID:        t.ID,
			Session:   t.SessionID,
			Date:      t.CreatedAt.Format(time.RFC3339),
			Exported:  t.ExportedAt.Format(time.RFC3339),
			Commands:  len(t.Entries),
			Warnings:  counts[commands.StatusWarning],
			Errors:    counts[commands.StatusError],
			Generator: "mcp",
		})
		if err != nil {
			return nil, fmt.Errorf("frontmatter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(fm)
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(title))

	if e.options.IncludeMetadata {
		sb.WriteString("## Session Information\n\n")
		fmt.Fprintf(&sb, "- **Started**: %s\n", formatTimestamp(t.CreatedAt))
		fmt.Fprintf(&sb, "- **Commands**: %d\n", len(t.Entries))
		for _, status := range []commands.Status{commands.StatusSuccess, commands.StatusInfo, commands.StatusWarning, commands.StatusError} {
			if n := counts[status]; n > 0 {
				fmt.Fprintf(&sb, "- **%s**: %d\n", statusLabel(status), n)
			}
		}
		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("## Transcript\n\n")
	for i, entry := range t.Entries {
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %d. `%s` <sub>%s</sub>\n\n", entry.Index, entry.Command, formatShortTimestamp(entry.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %d. `%s`\n\n", entry.Index, entry.Command)
		}

		fmt.Fprintf(&sb, "**%s**: %s\n", statusLabel(entry.Status), escapeMarkdown(entry.Message))

		if e.options.IncludePayloads && len(entry.Data) > 0 {
			data, err := json.MarshalIndent(entry.Data, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("entry %d payload: %w", entry.Index, err)
			}
			sb.WriteString("\n```json\n")
			sb.Write(data)
			sb.WriteString("\n```\n")
		}

		if i < len(t.Entries)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "*Exported from mcp on %s*\n", t.ExportedAt.Format("January 2, 2006 at 3:04 PM"))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// statusLabel returns "[OK]"-style labels for response statuses.
func statusLabel(s commands.Status) string {
	switch s {
	case commands.StatusSuccess:
		return "[OK]"
	case commands.StatusInfo:
		return "[INFO]"
	case commands.StatusWarning:
		return "[WARN]"
	case commands.StatusError:
		return "[FAIL]"
	default:
		return "[" + strings.ToUpper(string(s)) + "]"
	}
}

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
