// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel fans record chunks out to a fixed worker pool and fans the
// per-chunk results back into one deterministic aggregate.
package parallel

import (
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/observability"
	"fieldtrace/internal/resolver"
	"fieldtrace/internal/structure"
)

// Job is one contiguous chunk of records to process.
type Job struct {
	ChunkID string
	Index   int
	Records []detector.Record
}

// ChunkResult is the isolated output of one chunk: its matches in found
// order plus the chunk-local counters. Chunks are combined by concatenation
// and summation only.
type ChunkResult struct {
	ChunkID          string
	Index            int
	Matches          []detector.Match
	RecordsSeen      int
	RecordsWithMatch int
}

// Executor partitions records into fixed-size chunks and processes them on
// independent workers. Chunks share no mutable state; each runs to completion
// on its worker and reports over the results channel.
type Executor struct {
	workers  int
	matchers []detector.Matcher
	resolver *resolver.Resolver
	observer *observability.StandardObserver
}

// NewExecutor creates an executor. workers <= 0 means one worker per CPU;
// the pool never exceeds the chunk count.
func NewExecutor(workers int, matchers []detector.Matcher, res *resolver.Resolver, observer *observability.StandardObserver) *Executor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Executor{
		workers:  workers,
		matchers: matchers,
		resolver: res,
		observer: observer,
	}
}

// Run processes all records in chunks of chunkSize and returns the aggregate
// match list and counters. onChunkDone, when non-nil, is called after each
// chunk completes with the done/total counts (completion order, not
// submission order). The aggregate concatenates chunk results in chunk-index
// order so repeated runs over the same corpus produce identical output.
func (e *Executor) Run(records []detector.Record, chunkSize int, onChunkDone func(done, total int)) ([]detector.Match, detector.Summary) {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("executor", "run", "")
	}

	jobs := splitChunks(records, chunkSize)

	workers := e.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobsChan := make(chan Job, len(jobs))
	resultsChan := make(chan ChunkResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobsChan {
				resultsChan <- e.processChunk(job)
			}
		}()
	}

	for _, job := range jobs {
		jobsChan <- job
	}
	close(jobsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Single aggregating owner: workers never touch shared result state.
	results := make([]ChunkResult, 0, len(jobs))
	for result := range resultsChan {
		results = append(results, result)
		if onChunkDone != nil {
			onChunkDone(len(results), len(jobs))
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })

	var matches []detector.Match
	var summary detector.Summary
	for _, result := range results {
		matches = append(matches, result.Matches...)
		summary.RecordsSeen += result.RecordsSeen
		summary.RecordsWithMatch += result.RecordsWithMatch
	}
	summary.TotalMatches = len(matches)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"chunks":       len(jobs),
			"workers":      workers,
			"match_count":  summary.TotalMatches,
			"records_seen": summary.RecordsSeen,
		})
	}
	return matches, summary
}

// processChunk runs every record of one chunk through detection and field
// resolution. Per-record intermediate state (structure index, hit lists) is
// discarded as soon as the record's matches are emitted. The chunk ID is the
// timing target so debug runs can correlate per-chunk output.
func (e *Executor) processChunk(job Job) ChunkResult {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("executor", "process_chunk", job.ChunkID)
	}

	result := ChunkResult{ChunkID: job.ChunkID, Index: job.Index}

	for _, record := range job.Records {
		matches := e.processRecord(record)
		result.RecordsSeen++
		if len(matches) > 0 {
			result.RecordsWithMatch++
			result.Matches = append(result.Matches, matches...)
		}
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"chunk_index":  job.Index,
			"record_count": result.RecordsSeen,
			"match_count":  len(result.Matches),
		})
	}
	return result
}

// processRecord detects and attributes every hit in one record. A panic
// while processing leaves the record counted as seen-but-unmatched instead
// of taking down the chunk.
func (e *Executor) processRecord(record detector.Record) (matches []detector.Match) {
	defer func() {
		if r := recover(); r != nil {
			if e.observer != nil {
				e.observer.LogOperation(observability.StandardObservabilityData{
					Component: "executor",
					Operation: "process_record",
					Target:    record.ID,
					Success:   false,
				})
			}
			matches = nil
		}
	}()

	type found struct {
		matcher detector.Matcher
		hit     detector.Hit
	}
	var hits []found
	for _, m := range e.matchers {
		for _, hit := range m.Detect(record.Payload) {
			hits = append(hits, found{matcher: m, hit: hit})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	// Each matcher emits its hits left to right; merge across matchers so a
	// multi-check record's matches read in document order.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].hit.Start < hits[j].hit.Start })

	// One index per record, built only when there is something to attribute.
	ix := structure.Build(record.Payload)

	for _, f := range hits {
		normalized := f.matcher.Normalize(f.hit.Text)
		matches = append(matches, detector.Match{
			RecordID:   record.ID,
			Timestamp:  record.Timestamp,
			Payload:    record.Payload,
			Type:       f.matcher.Name(),
			Text:       f.hit.Text,
			Normalized: normalized,
			FieldLabel: e.resolver.Resolve(f.matcher.Name(), normalized, record.Payload, ix),
			Start:      f.hit.Start,
			End:        f.hit.End,
		})
	}
	return matches
}

// splitChunks partitions records into fixed-size contiguous chunks.
func splitChunks(records []detector.Record, chunkSize int) []Job {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	var jobs []Job
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}
		jobs = append(jobs, Job{
			ChunkID: uuid.NewString(),
			Index:   len(jobs),
			Records: records[start:end],
		})
	}
	return jobs
}
