// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reporter renders an in-place chunk completion line on a terminal. When the
// output is not a TTY (redirected stderr, CI) or quiet mode is on, every
// method is a no-op so scripts see clean output.
type Reporter struct {
	out     *os.File
	enabled bool
	width   int
}

// NewReporter creates a reporter writing to out.
func NewReporter(out *os.File, quiet bool) *Reporter {
	r := &Reporter{out: out}
	if quiet || out == nil {
		return r
	}
	fd := int(out.Fd())
	if !term.IsTerminal(fd) {
		return r
	}
	r.enabled = true
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		r.width = w
	} else {
		r.width = 80
	}
	return r
}

// ChunkDone redraws the progress line after a chunk completes.
func (r *Reporter) ChunkDone(done, total int) {
	if !r.enabled || total == 0 {
		return
	}
	line := fmt.Sprintf("Scanning: %d/%d chunks (%d%%)", done, total, done*100/total)
	if len(line) > r.width-1 {
		line = line[:r.width-1]
	}
	fmt.Fprintf(r.out, "\r%s%s", line, strings.Repeat(" ", r.width-1-len(line)))
}

// Finish clears the progress line.
func (r *Reporter) Finish() {
	if !r.enabled {
		return
	}
	fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", r.width-1))
}
