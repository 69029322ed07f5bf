// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/formatters"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// response is the output document: the match list plus run counters.
type response struct {
	Matches []jsonMatch      `json:"matches"`
	Summary detector.Summary `json:"summary"`
}

// jsonMatch mirrors detector.Match with redaction applied.
type jsonMatch struct {
	RecordID   string `json:"record_id"`
	Timestamp  string `json:"timestamp"`
	Type       string `json:"type"`
	Text       string `json:"matched_text"`
	Normalized string `json:"normalized_value,omitempty"`
	FieldLabel string `json:"field_label"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

func (f *Formatter) Format(matches []detector.Match, summary detector.Summary, options formatters.FormatterOptions) (string, error) {
	out := response{Matches: make([]jsonMatch, 0, len(matches)), Summary: summary}

	for _, match := range matches {
		jm := jsonMatch{
			RecordID:   match.RecordID,
			Timestamp:  match.Timestamp,
			Type:       match.Type,
			Text:       "[REDACTED]",
			FieldLabel: match.FieldLabel,
			Start:      match.Start,
			End:        match.End,
		}
		if options.ShowMatch {
			jm.Text = match.Text
			jm.Normalized = match.Normalized
		}
		out.Matches = append(out.Matches, jm)
	}

	var data []byte
	var err error
	if options.Verbose {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}

	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
