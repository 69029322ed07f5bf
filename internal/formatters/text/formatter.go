// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/formatters"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(matches []detector.Match, summary detector.Summary, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder

	if len(matches) == 0 {
		builder.WriteString("No matches found.\n")
	} else if options.Verbose {
		for _, match := range matches {
			f.appendDetailedMatch(&builder, match, options)
		}
	} else {
		f.appendHeaders(&builder)
		for _, match := range matches {
			f.appendSummaryLine(&builder, match, options)
		}
	}

	builder.WriteString("\n")
	f.colors["white"].Fprintf(&builder, "Records seen: %d  Records with matches: %d  Total matches: %d\n",
		summary.RecordsSeen, summary.RecordsWithMatch, summary.TotalMatches)

	return builder.String(), nil
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder) {
	f.colors["white"].Fprintf(builder, "%-12s %-12s %-12s %-28s %s\n",
		"RECORD", "TIMESTAMP", "TYPE", "FIELD", "MATCH")
}

// appendSummaryLine prints a single line summary for one match
func (f *Formatter) appendSummaryLine(builder *strings.Builder, match detector.Match, options formatters.FormatterOptions) {
	displayText := "[REDACTED]"
	if options.ShowMatch {
		displayText = match.Text
	}

	field := match.FieldLabel
	fieldColor := f.colors["green"]
	if field == "" {
		field = "(unresolved)"
		fieldColor = f.colors["red"]
	}

	fmt.Fprintf(builder, "%-12s %-12s ", match.RecordID, match.Timestamp)
	f.colors["cyan"].Fprintf(builder, "%-12s ", match.Type)
	fieldColor.Fprintf(builder, "%-28s ", field)
	fmt.Fprintf(builder, "%s\n", displayText)
}

// appendDetailedMatch prints the full detail block for one match
func (f *Formatter) appendDetailedMatch(builder *strings.Builder, match detector.Match, options formatters.FormatterOptions) {
	f.colors["white"].Fprintf(builder, "Record %s (timestamp %s)\n", match.RecordID, match.Timestamp)
	f.colors["cyan"].Fprintf(builder, "  Type:       %s\n", match.Type)

	if match.FieldLabel != "" {
		f.colors["green"].Fprintf(builder, "  Field:      %s\n", match.FieldLabel)
	} else {
		f.colors["red"].Fprintf(builder, "  Field:      (unresolved)\n")
	}

	if options.ShowMatch {
		fmt.Fprintf(builder, "  Match:      %s\n", match.Text)
		fmt.Fprintf(builder, "  Normalized: %s\n", match.Normalized)
	}
	fmt.Fprintf(builder, "  Span:       [%d:%d]\n", match.Start, match.End)
	fmt.Fprintf(builder, "\n")
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
