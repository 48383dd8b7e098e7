// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/mcp-console/internal/util"
)

// ErrUnknownFormat is returned by ForFormat for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a transcript in one file format.
type Exporter interface {
	// Export converts a transcript to the target format and returns the content.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// IncludeMetadata includes the session header.
	IncludeMetadata bool

	// IncludeTimestamps includes per-entry timestamps.
	IncludeTimestamps bool

	// IncludePayloads includes response data blocks.
	IncludePayloads bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		IncludePayloads:   true,
	}
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{"json", "markdown", "yaml"}
}

// ForFormat returns the exporter for a format name. "md" and "yml" are
// accepted as short forms.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return NewJSONExporter(), nil
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "yaml", "yml":
		return NewYAMLExporter(), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders t with exporter and writes it under opts.OutputDir.
// Returns the output file path.
func ExportToFile(t *Transcript, exporter Exporter, opts *Options) (string, error) {
	if t == nil {
		return "", errors.New("transcript is nil")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	stamp := t.ExportedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := fmt.Sprintf("mcp_%s_%s%s",
		sanitizeFilename(t.SessionID),
		stamp.Format("20060102_150405"),
		exporter.FileExtension(),
	)

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// ExportFormat is ForFormat followed by ExportToFile.
func ExportFormat(t *Transcript, format string, opts *Options) (string, error) {
	exporter, err := ForFormat(format, opts)
	if err != nil {
		return "", err
	}
	return ExportToFile(t, exporter, opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	s = util.TruncateWidth(s, 50)

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "session"
	}
	return b.String()
}

// formatTimestamp formats a timestamp for headers.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
