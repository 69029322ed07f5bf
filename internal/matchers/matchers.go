// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matchers holds the span-scanning helpers shared by the entity
// matcher implementations in its subpackages.
package matchers

import (
	"regexp"
	"sort"

	"fieldtrace/internal/detector"
)

// Pattern is one detection grammar within an entity type.
type Pattern struct {
	Name  string
	Regex *regexp.Regexp
}

// BoundaryFunc reports whether the span [start,end) sits on an acceptable
// boundary within payload. RE2 has no lookarounds, so boundary policy is
// enforced by inspecting the bytes adjacent to each candidate span.
type BoundaryFunc func(payload string, start, end int) bool

// Scan runs every pattern over the payload, applies the boundary policy, and
// returns non-overlapping hits in left-to-right span order. When two patterns
// produce overlapping candidates the earlier (then longer) span wins.
func Scan(payload string, patterns []Pattern, boundary BoundaryFunc) []detector.Hit {
	var candidates []detector.Hit
	for _, p := range patterns {
		for _, span := range p.Regex.FindAllStringIndex(payload, -1) {
			if boundary != nil && !boundary(payload, span[0], span[1]) {
				continue
			}
			candidates = append(candidates, detector.Hit{
				Text:  payload[span[0]:span[1]],
				Start: span[0],
				End:   span[1],
			})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].End > candidates[j].End
	})

	hits := candidates[:1]
	for _, c := range candidates[1:] {
		if c.Start >= hits[len(hits)-1].End {
			hits = append(hits, c)
		}
	}
	return hits
}

// DigitBounded rejects spans that abut a digit on either side. Letters do not
// block: "9876543210abc" still yields the digit body, "19876543210" does not.
func DigitBounded(payload string, start, end int) bool {
	if start > 0 && isDigit(payload[start-1]) {
		return false
	}
	if end < len(payload) && isDigit(payload[end]) {
		return false
	}
	return true
}

// WordBounded rejects spans that abut a word character on either side.
func WordBounded(payload string, start, end int) bool {
	if start > 0 && isWord(payload[start-1]) {
		return false
	}
	if end < len(payload) && isWord(payload[end]) {
		return false
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWord(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
