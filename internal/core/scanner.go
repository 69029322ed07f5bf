// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fieldtrace/internal/corpus"
	"fieldtrace/internal/detector"
	"fieldtrace/internal/observability"
	"fieldtrace/internal/parallel"
	"fieldtrace/internal/resolver"
)

// ScanConfig holds configuration for scanning operations.
type ScanConfig struct {
	CorpusPath string
	Checks     []string
	ChunkSize  int
	Workers    int
	Keywords   []string
	Resolver   resolver.Config
	Debug      bool
	// OnChunkDone, when non-nil, is called after each chunk completes.
	OnChunkDone func(done, total int)
}

// ScanResult holds the results of a scanning operation.
type ScanResult struct {
	Matches []detector.Match
	Summary detector.Summary
}

// ScanCorpus performs the core scanning logic shared by the CLI: load the
// corpus, fan record chunks out to the executor, and aggregate. An
// unreadable corpus is the only fatal outcome; data-quality problems inside
// records degrade to unresolved or unmatched results.
func ScanCorpus(scanConfig ScanConfig) (*ScanResult, error) {
	// Build observer
	level := observability.ObservabilityMetrics
	if scanConfig.Debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	records, err := corpus.NewLoader().LoadFile(scanConfig.CorpusPath)
	if err != nil {
		return nil, err
	}

	return scanRecords(records, scanConfig, observer)
}

// ScanReader is ScanCorpus for an already-open corpus stream.
func ScanReader(r io.Reader, scanConfig ScanConfig) (*ScanResult, error) {
	observer := observability.NewStandardObserver(observability.ObservabilityOff, io.Discard)
	if scanConfig.Debug {
		observer = observability.NewStandardObserver(observability.ObservabilityDebug, os.Stderr)
	}

	records, err := corpus.NewLoader().Load(r)
	if err != nil {
		return nil, fmt.Errorf("error reading corpus: %w", err)
	}

	return scanRecords(records, scanConfig, observer)
}

func scanRecords(records []detector.Record, scanConfig ScanConfig, observer *observability.StandardObserver) (*ScanResult, error) {
	enabledChecks := ParseChecksToRun(scanConfig.Checks)
	matcherSet := BuildMatcherSet(enabledChecks, scanConfig.Keywords)
	if len(matcherSet) == 0 {
		return nil, fmt.Errorf("no checks enabled")
	}

	res := resolver.New(scanConfig.Resolver)
	executor := parallel.NewExecutor(scanConfig.Workers, matcherSet, res, observer)
	matches, summary := executor.Run(records, scanConfig.ChunkSize, scanConfig.OnChunkDone)

	return &ScanResult{Matches: matches, Summary: summary}, nil
}

// ParseChecksToRun converts a slice of check names into an enabled-checks map.
// An empty slice or ["all"] enables every check.
func ParseChecksToRun(checks []string) map[string]bool {
	result := map[string]bool{
		"PHONE":       false,
		"CREDIT_CARD": false,
		"EMAIL":       false,
		"TAX_ID":      false,
		"VOTER_ID":    false,
		"KEYWORD":     false,
	}

	if len(checks) == 0 || (len(checks) == 1 && strings.TrimSpace(checks[0]) == "all") {
		for key := range result {
			result[key] = true
		}
		return result
	}

	for _, check := range checks {
		if checkStr := strings.TrimSpace(check); checkStr != "" {
			if _, exists := result[checkStr]; exists {
				result[checkStr] = true
			}
		}
	}

	return result
}
