// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxid

import (
	"regexp"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/matchers"
)

// Matcher detects permanent account numbers: five letters, four digits, one
// letter, bounded by non-word characters. No checksum validation is applied.
type Matcher struct {
	patterns []matchers.Pattern
}

// NewMatcher creates a tax-id matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: []matchers.Pattern{
			{
				Name:  "PAN",
				Regex: regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`),
			},
		},
	}
}

func (m *Matcher) Name() string {
	return "TAX_ID"
}

// Detect returns the tax-id hits in payload in left-to-right span order.
func (m *Matcher) Detect(payload string) []detector.Hit {
	return matchers.Scan(payload, m.patterns, matchers.WordBounded)
}

// Normalize is the identity: the identifier is already in canonical form.
func (m *Matcher) Normalize(matched string) string {
	return matched
}
