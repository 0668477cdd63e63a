// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aurexus/aurexus-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to a machine-readable JSON document.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }

// jsonDocument is the exported file shape.
type jsonDocument struct {
	SessionID  string          `json:"session_id"`
	ExportedAt string          `json:"exported_at"`
	Generator  string          `json:"generator"`
	Messages   []model.Message `json:"messages"`
}

// Export converts a transcript to indented JSON.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil || len(t.Messages) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}

	doc := jsonDocument{
		SessionID:  t.SessionID,
		ExportedAt: time.Now().Format(time.RFC3339),
		Generator:  "aurexus-tui",
		Messages:   t.Messages,
	}
	return json.MarshalIndent(doc, "", "  ")
}
