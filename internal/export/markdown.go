// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil || len(t.Messages) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("session: %s\n", t.SessionID))
		sb.WriteString(fmt.Sprintf("messages: %d\n", len(t.Messages)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
		sb.WriteString("generator: aurexus-tui\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# Aurexus Conversation\n\n")

	for i := range t.Messages {
		m := &t.Messages[i]

		header := "## " + m.Role.DisplayName()
		if m.Topic != "" {
			header += fmt.Sprintf(" (%s)", m.Topic)
		}
		if m.IsBlocked() {
			header += " [blocked]"
		}
		sb.WriteString(header)
		sb.WriteString("\n\n")

		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("*%s*\n\n", m.Timestamp.Format("2006-01-02 15:04:05")))
		}

		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}

	return []byte(sb.String()), nil
}
