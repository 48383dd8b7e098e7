// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes session transcripts to disk.
//
// A Transcript is built from a history log with FromHistory and rendered by
// an Exporter:
//
//   - JSONExporter: the full transcript as indented JSON
//   - MarkdownExporter: YAML frontmatter, one section per command, payloads
//     as fenced json blocks
//   - YAMLExporter: the full transcript as YAML
//
// # Usage
//
//	t := export.FromHistory(sess.SessionID(), start, sess.History(), time.Now())
//	path, err := export.ExportFormat(t, "markdown", export.DefaultOptions())
//
// Files are written atomically as mcp_<session>_<timestamp><ext>.
package export
