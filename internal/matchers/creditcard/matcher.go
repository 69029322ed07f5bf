// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package creditcard

import (
	"regexp"
	"strings"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/matchers"
)

// Matcher detects payment card numbers by issuer scheme: 16-digit bodies in
// 4-4-4-4 groups (Visa, Mastercard, RuPay/Discover) and the 15-digit Amex
// 4-6-5 grouping, written contiguous or with '-'/space separators. Card
// numbers are not Luhn-checked here; detection is purely structural.
type Matcher struct {
	patterns []matchers.Pattern
}

// NewMatcher creates a card matcher with its predefined issuer patterns.
func NewMatcher() *Matcher {
	return &Matcher{
		patterns: []matchers.Pattern{
			{
				Name:  "Visa",
				Regex: regexp.MustCompile(`4[0-9]{3}[-\s]?[0-9]{4}[-\s]?[0-9]{4}[-\s]?[0-9]{4}`),
			},
			{
				Name:  "Mastercard",
				Regex: regexp.MustCompile(`5[1-5][0-9]{2}[-\s]?[0-9]{4}[-\s]?[0-9]{4}[-\s]?[0-9]{4}`),
			},
			{
				Name:  "RuPay_Discover",
				Regex: regexp.MustCompile(`6[0-9]{3}[-\s]?[0-9]{4}[-\s]?[0-9]{4}[-\s]?[0-9]{4}`),
			},
			{
				Name:  "Amex",
				Regex: regexp.MustCompile(`3[47][0-9]{2}[-\s]?[0-9]{6}[-\s]?[0-9]{5}`),
			},
		},
	}
}

func (m *Matcher) Name() string {
	return "CREDIT_CARD"
}

// Detect returns the card hits in payload in left-to-right span order.
func (m *Matcher) Detect(payload string) []detector.Hit {
	return matchers.Scan(payload, m.patterns, matchers.DigitBounded)
}

// Normalize strips group separators; "4111-1111-1111-1111" looks up as
// "4111111111111111" while the separated form remains the matched text.
func (m *Matcher) Normalize(matched string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, matched)
}
