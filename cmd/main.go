// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"fieldtrace/internal/config"
	"fieldtrace/internal/core"
	"fieldtrace/internal/detector"
	"fieldtrace/internal/formatters"
	_ "fieldtrace/internal/formatters/csv"
	_ "fieldtrace/internal/formatters/json"
	_ "fieldtrace/internal/formatters/text"
	"fieldtrace/internal/progress"
	"fieldtrace/internal/version"
)

func main() {
	corpusFile := flag.String("file", "", "Path to the corpus file to scan")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, csv (default: text)")
	checksToRun := flag.String("checks", "", "Specific checks to run: PHONE, CREDIT_CARD, EMAIL, TAX_ID, VOTER_ID, KEYWORD, or combinations like 'PHONE,EMAIL'")
	chunkSize := flag.Int("chunk-size", 0, "Number of records per worker chunk (default: 100)")
	workers := flag.Int("workers", 0, "Number of parallel workers (default: number of CPUs)")
	verbose := flag.Bool("verbose", false, "Display detailed information for each finding")
	debug := flag.Bool("debug", false, "Enable debug logging to show detection and resolution flow")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	unresolvedLog := flag.String("unresolved-log", "", "Path to a log of matches with no resolved field label")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showMatch := flag.Bool("show-match", false, "Display the actual matched text in findings")
	quiet := flag.Bool("quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.LoadConfigOrDefault(*configFile)

	if *listProfiles {
		printProfiles(cfg)
		return
	}

	if *corpusFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	// Start from config defaults, overlay the selected profile, then any
	// explicitly set flags.
	effFormat := cfg.Defaults.Format
	effChecks := cfg.Defaults.Checks
	effChunkSize := cfg.Defaults.ChunkSize
	effVerbose := cfg.Defaults.Verbose
	effNoColor := cfg.Defaults.NoColor
	effShowMatch := cfg.Defaults.ShowMatch

	if *profileName != "" {
		profile := cfg.GetProfile(*profileName)
		if profile == nil {
			fmt.Fprintf(os.Stderr, "Error: profile %q not found in config\n", *profileName)
			os.Exit(2)
		}
		if profile.Format != "" {
			effFormat = profile.Format
		}
		if profile.Checks != "" {
			effChecks = profile.Checks
		}
		if profile.ChunkSize > 0 {
			effChunkSize = profile.ChunkSize
		}
		effVerbose = effVerbose || profile.Verbose
		effNoColor = effNoColor || profile.NoColor
		effShowMatch = effShowMatch || profile.ShowMatch
	}

	if *outputFormat != "" {
		effFormat = *outputFormat
	}
	if *checksToRun != "" {
		effChecks = *checksToRun
	}
	if *chunkSize > 0 {
		effChunkSize = *chunkSize
	}
	effVerbose = effVerbose || *verbose
	effNoColor = effNoColor || *noColor
	effShowMatch = effShowMatch || *showMatch

	formatter, ok := formatters.Get(effFormat)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (available: %s)\n",
			effFormat, strings.Join(formatters.List(), ", "))
		os.Exit(2)
	}

	reporter := progress.NewReporter(os.Stderr, *quiet)

	result, err := core.ScanCorpus(core.ScanConfig{
		CorpusPath:  *corpusFile,
		Checks:      strings.Split(effChecks, ","),
		ChunkSize:   effChunkSize,
		Workers:     *workers,
		Keywords:    cfg.Keywords,
		Resolver:    cfg.Resolver,
		Debug:       *debug,
		OnChunkDone: reporter.ChunkDone,
	})
	reporter.Finish()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *unresolvedLog != "" {
		if err := writeUnresolvedLog(*unresolvedLog, result.Matches); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write unresolved log: %v\n", err)
		}
	}

	output, err := formatter.Format(result.Matches, result.Summary, formatters.FormatterOptions{
		Verbose:   effVerbose,
		NoColor:   effNoColor || *outputFile != "",
		ShowMatch: effShowMatch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(output)
	}
}

// writeUnresolvedLog appends one line per match whose field label stayed
// empty — the side channel consumed by downstream reporting.
func writeUnresolvedLog(path string, matches []detector.Match) error {
	var sb strings.Builder
	for _, match := range matches {
		if match.FieldLabel != "" {
			continue
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", match.Type, match.RecordID, match.Text)
	}
	return os.WriteFile(path, []byte(sb.String()), 0o600)
}

func printProfiles(cfg *config.Config) {
	names := cfg.ListProfiles()
	if len(names) == 0 {
		fmt.Println("No profiles defined.")
		return
	}
	for _, name := range names {
		profile := cfg.GetProfile(name)
		if profile.Description != "" {
			fmt.Printf("%s - %s\n", name, profile.Description)
		} else {
			fmt.Println(name)
		}
	}
}
