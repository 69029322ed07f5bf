// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strings"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(matches []detector.Match, summary detector.Summary, options formatters.FormatterOptions) (string, error) {
	headers := []string{"Record", "Timestamp", "Type", "Field", "Text"}
	if options.Verbose {
		headers = append(headers, "Normalized", "Start", "End")
	}

	// Start with header row
	csvRows := []string{strings.Join(headers, ",")}

	for _, match := range matches {
		csvRows = append(csvRows, f.createCSVRow(match, options))
	}

	// Trailing counters row pair keeps the sheet self-describing.
	csvRows = append(csvRows, "")
	csvRows = append(csvRows, fmt.Sprintf("# records_seen=%d records_with_match=%d total_matches=%d",
		summary.RecordsSeen, summary.RecordsWithMatch, summary.TotalMatches))

	return strings.Join(csvRows, "\n"), nil
}

// createCSVRow creates a CSV row for a match
func (f *Formatter) createCSVRow(match detector.Match, options formatters.FormatterOptions) string {
	displayText := "[REDACTED]"
	if options.ShowMatch {
		displayText = match.Text
	}

	row := []string{
		f.escapeCSVField(match.RecordID),
		f.escapeCSVField(match.Timestamp),
		f.escapeCSVField(match.Type),
		f.escapeCSVField(match.FieldLabel),
		f.escapeCSVField(displayText),
	}

	if options.Verbose {
		normalized := "[REDACTED]"
		if options.ShowMatch {
			normalized = match.Normalized
		}
		row = append(row,
			f.escapeCSVField(normalized),
			fmt.Sprintf("%d", match.Start),
			fmt.Sprintf("%d", match.End),
		)
	}

	return strings.Join(row, ",")
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	// Prevent CSV injection by sanitizing formula characters
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.Contains(field, ",") || strings.Contains(field, "\"") || strings.Contains(field, "\n") || strings.Contains(field, "\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prevents CSV injection attacks by sanitizing formula characters
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		// Prefix with single quote to prevent formula execution
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
