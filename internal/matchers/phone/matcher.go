// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"regexp"
	"strings"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/matchers"
)

// Matcher detects mobile numbers: an optional country/trunk prefix followed
// by a fixed ten-digit body whose first digit is 6-9. The span must not abut
// another digit on either side, so a valid body inside a longer digit run is
// not a match.
type Matcher struct {
	patterns []matchers.Pattern
}

// NewMatcher creates a phone matcher with its predefined patterns.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: []matchers.Pattern{
			{
				Name:  "IN_International",
				Regex: regexp.MustCompile(`\+91[-\s]?[6-9][0-9]{9}`),
			},
			{
				Name:  "IN_CountryCode",
				Regex: regexp.MustCompile(`91[6-9][0-9]{9}`),
			},
			{
				Name:  "IN_Trunk",
				Regex: regexp.MustCompile(`0[6-9][0-9]{9}`),
			},
			{
				Name:  "IN_Bare",
				Regex: regexp.MustCompile(`[6-9][0-9]{9}`),
			},
		},
	}
}

func (m *Matcher) Name() string {
	return "PHONE"
}

// Detect returns the phone hits in payload in left-to-right span order.
func (m *Matcher) Detect(payload string) []detector.Hit {
	return matchers.Scan(payload, m.patterns, m.bounded)
}

// bounded applies the digit-boundary policy. A '+' immediately before the
// span only blocks when the span itself does not start at its prefix (the
// plus belongs to the number, which the IN_International pattern consumes).
func (m *Matcher) bounded(payload string, start, end int) bool {
	if !matchers.DigitBounded(payload, start, end) {
		return false
	}
	// Reject a bare body directly preceded by '+': the sign marks a country
	// code the body pattern did not consume, e.g. "+19876543210".
	if start > 0 && payload[start-1] == '+' && !strings.HasPrefix(payload[start:end], "+") {
		return false
	}
	return true
}

// Normalize strips separators and the +91/91/0 prefix, leaving the bare
// ten-digit subscriber number used as the field-lookup value.
func (m *Matcher) Normalize(matched string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, matched)

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	default:
		return digits
	}
}
