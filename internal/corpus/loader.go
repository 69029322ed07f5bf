// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"fieldtrace/internal/detector"
)

// timestampLine is the record-emitting grammar: "CreateTime:" followed by the
// epoch digits, whitespace, and the payload for the rest of the line.
var timestampLine = regexp.MustCompile(`^CreateTime:(\d+)\s+(.*)$`)

// Loader turns the raw corpus into a sequence of records.
//
// The corpus is line oriented. A line matching the timestamp grammar emits a
// record paired with the most recent non-blank, non-timestamp line seen
// before it; any other non-blank line becomes the pending identifier. A
// timestamp line with no pending identifier is dropped. Blank lines are
// ignored.
type Loader struct {
	lastIdentifier string
	haveIdentifier bool
}

// NewLoader creates a loader in the awaiting-identifier state.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile reads the corpus at path. An unreadable corpus is fatal; bad bytes
// inside the corpus are not (see Load).
func (l *Loader) LoadFile(path string) ([]detector.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open corpus: %w", err)
	}
	defer f.Close()

	records, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("error reading corpus %s: %w", path, err)
	}
	return records, nil
}

// Load consumes the corpus from r and returns the records in corpus order.
// Invalid UTF-8 sequences are replaced with U+FFFD rather than aborting the
// run. Loading simply ends at end of input; there is no terminal state.
func (l *Loader) Load(r io.Reader) ([]detector.Record, error) {
	var records []detector.Record

	scanner := bufio.NewScanner(r)
	// Payloads can be large pasted blobs; raise the per-line limit well above
	// the bufio default.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.ToValidUTF8(scanner.Text(), "�")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := timestampLine.FindStringSubmatch(line); m != nil {
			if l.haveIdentifier {
				records = append(records, detector.Record{
					ID:        l.lastIdentifier,
					Timestamp: m[1],
					Payload:   m[2],
				})
			}
			// A timestamp line never becomes an identifier.
			continue
		}

		l.lastIdentifier = strings.TrimSpace(line)
		l.haveIdentifier = true
	}

	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}
