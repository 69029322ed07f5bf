// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/matchers/email"
	"fieldtrace/internal/matchers/phone"
	"fieldtrace/internal/observability"
	"fieldtrace/internal/resolver"
)

func makeRecords(n int) []detector.Record {
	records := make([]detector.Record, n)
	for i := range records {
		records[i] = detector.Record{
			ID:        fmt.Sprintf("REC%03d", i),
			Timestamp: "1690000000",
			Payload:   fmt.Sprintf(`{"phone":"98765432%02d"}`, i%100),
		}
	}
	return records
}

func TestSplitChunks(t *testing.T) {
	jobs := splitChunks(makeRecords(25), 10)

	require.Len(t, jobs, 3)
	assert.Len(t, jobs[0].Records, 10)
	assert.Len(t, jobs[1].Records, 10)
	assert.Len(t, jobs[2].Records, 5)
	for i, job := range jobs {
		assert.Equal(t, i, job.Index)
		assert.NotEmpty(t, job.ChunkID)
	}
	assert.NotEqual(t, jobs[0].ChunkID, jobs[1].ChunkID)
}

func TestSplitChunks_DefaultSize(t *testing.T) {
	jobs := splitChunks(makeRecords(150), 0)

	require.Len(t, jobs, 2)
	assert.Len(t, jobs[0].Records, 100)
	assert.Len(t, jobs[1].Records, 50)
}

func TestRun_CountersSumAcrossChunks(t *testing.T) {
	records := makeRecords(23)
	// Replace every third payload with one that has nothing to find.
	for i := 0; i < len(records); i += 3 {
		records[i].Payload = `{"note":"nothing here"}`
	}

	e := NewExecutor(4, []detector.Matcher{phone.NewMatcher()}, resolver.New(resolver.DefaultConfig()), nil)
	matches, summary := e.Run(records, 5, nil)

	assert.Equal(t, 23, summary.RecordsSeen)
	assert.Equal(t, 15, summary.RecordsWithMatch)
	assert.Equal(t, 15, summary.TotalMatches)
	assert.Len(t, matches, summary.TotalMatches)
}

func TestRun_RepeatedRunsAreIdentical(t *testing.T) {
	records := makeRecords(40)
	e := NewExecutor(8, []detector.Matcher{phone.NewMatcher()}, resolver.New(resolver.DefaultConfig()), nil)

	first, firstSummary := e.Run(records, 3, nil)
	second, secondSummary := e.Run(records, 3, nil)

	assert.Equal(t, firstSummary, secondSummary)
	assert.Equal(t, first, second)
}

func TestRun_MatchesStayInRecordOrder(t *testing.T) {
	records := makeRecords(12)
	e := NewExecutor(4, []detector.Matcher{phone.NewMatcher()}, resolver.New(resolver.DefaultConfig()), nil)

	matches, _ := e.Run(records, 2, nil)

	require.Len(t, matches, 12)
	for i, m := range matches {
		assert.Equal(t, fmt.Sprintf("REC%03d", i), m.RecordID)
	}
}

func TestRun_ProgressCallback(t *testing.T) {
	records := makeRecords(10)
	e := NewExecutor(2, []detector.Matcher{phone.NewMatcher()}, resolver.New(resolver.DefaultConfig()), nil)

	var calls int
	var lastDone, lastTotal int
	e.Run(records, 3, func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	})

	assert.Equal(t, 4, calls)
	assert.Equal(t, 4, lastDone)
	assert.Equal(t, 4, lastTotal)
}

func TestRun_EmptyCorpus(t *testing.T) {
	e := NewExecutor(4, []detector.Matcher{phone.NewMatcher()}, resolver.New(resolver.DefaultConfig()), nil)

	matches, summary := e.Run(nil, 10, nil)

	assert.Empty(t, matches)
	assert.Equal(t, detector.Summary{}, summary)
}

// panickingMatcher blows up on one specific payload.
type panickingMatcher struct {
	trigger string
}

func (p *panickingMatcher) Name() string { return "PANIC" }

func (p *panickingMatcher) Detect(payload string) []detector.Hit {
	if payload == p.trigger {
		panic("matcher failure")
	}
	return nil
}

func (p *panickingMatcher) Normalize(matched string) string { return matched }

func TestRun_PanicIsolatedToRecord(t *testing.T) {
	records := makeRecords(6)
	records[2].Payload = "poison"

	matchers := []detector.Matcher{phone.NewMatcher(), &panickingMatcher{trigger: "poison"}}
	e := NewExecutor(2, matchers, resolver.New(resolver.DefaultConfig()), nil)

	matches, summary := e.Run(records, 2, nil)

	// The poisoned record stays counted as seen but yields no matches; the
	// other five records are unaffected.
	assert.Equal(t, 6, summary.RecordsSeen)
	assert.Equal(t, 5, summary.RecordsWithMatch)
	require.Len(t, matches, 5)
	for _, m := range matches {
		assert.NotEqual(t, "REC002", m.RecordID)
	}
}

func TestProcessChunk_LogsChunkTarget(t *testing.T) {
	var buf bytes.Buffer
	observer := observability.NewStandardObserver(observability.ObservabilityDebug, &buf)
	e := NewExecutor(1, []detector.Matcher{phone.NewMatcher()}, resolver.New(resolver.DefaultConfig()), observer)

	job := Job{ChunkID: "4c7b9f2e-timing", Index: 3, Records: makeRecords(2)}
	result := e.processChunk(job)

	assert.Equal(t, "4c7b9f2e-timing", result.ChunkID)
	assert.Contains(t, buf.String(), "4c7b9f2e-timing")
	assert.Contains(t, buf.String(), "process_chunk")
}

func TestProcessRecord_MergesSpanOrderAcrossMatchers(t *testing.T) {
	matchers := []detector.Matcher{phone.NewMatcher(), email.NewMatcher()}
	e := NewExecutor(1, matchers, resolver.New(resolver.DefaultConfig()), nil)

	// The email sits before the phone in the payload but its matcher runs
	// second; emitted matches must still read in document order.
	record := detector.Record{
		ID:        "REC900",
		Timestamp: "1690000900",
		Payload:   `{"email":"user@example.com","phone":"9876543210"}`,
	}
	matches := e.processRecord(record)

	require.Len(t, matches, 2)
	assert.Equal(t, "EMAIL", matches[0].Type)
	assert.Equal(t, "PHONE", matches[1].Type)
	assert.Less(t, matches[0].Start, matches[1].Start)
	assert.Equal(t, "email", matches[0].FieldLabel)
	assert.Equal(t, "phone", matches[1].FieldLabel)
}

func TestProcessRecord_ResolvesFieldLabels(t *testing.T) {
	e := NewExecutor(1, []detector.Matcher{phone.NewMatcher()}, resolver.New(resolver.DefaultConfig()), nil)

	record := detector.Record{
		ID:        "REC001",
		Timestamp: "1690000000",
		Payload:   `{"phone":"9876543210","note":"call 9876543210 again"}`,
	}
	matches := e.processRecord(record)

	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.Equal(t, "PHONE", m.Type)
		assert.Equal(t, "9876543210", m.Normalized)
		assert.Equal(t, "phone", m.FieldLabel)
		assert.Equal(t, m.Text, record.Payload[m.Start:m.End])
	}
	assert.Less(t, matches[0].Start, matches[1].Start)
}
