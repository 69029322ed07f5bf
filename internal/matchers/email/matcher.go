// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package email

import (
	"regexp"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/matchers"
)

// Matcher detects email addresses: local part, '@', domain with a 2+ letter
// TLD, bounded by non-word characters on both sides.
type Matcher struct {
	patterns []matchers.Pattern
}

// NewMatcher creates an email matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: []matchers.Pattern{
			{
				Name:  "Standard",
				Regex: regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
			},
		},
	}
}

func (m *Matcher) Name() string {
	return "EMAIL"
}

// Detect returns the email hits in payload in left-to-right span order.
func (m *Matcher) Detect(payload string) []detector.Hit {
	return matchers.Scan(payload, m.patterns, matchers.WordBounded)
}

// Normalize is the identity: the address appears in structured fields exactly
// as matched.
func (m *Matcher) Normalize(matched string) string {
	return matched
}
