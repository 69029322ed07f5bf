// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package voterid

import (
	"regexp"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/matchers"
)

// Matcher detects electoral photo identity card numbers: three letters
// followed by seven digits, bounded by non-word characters.
type Matcher struct {
	patterns []matchers.Pattern
}

// NewMatcher creates a voter-id matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: []matchers.Pattern{
			{
				Name:  "EPIC",
				Regex: regexp.MustCompile(`[A-Z]{3}[0-9]{7}`),
			},
		},
	}
}

func (m *Matcher) Name() string {
	return "VOTER_ID"
}

// Detect returns the voter-id hits in payload in left-to-right span order.
func (m *Matcher) Detect(payload string) []detector.Hit {
	return matchers.Scan(payload, m.patterns, matchers.WordBounded)
}

// Normalize is the identity: the identifier is already in canonical form.
func (m *Matcher) Normalize(matched string) string {
	return matched
}
