// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fieldtrace/internal/detector"
	"fieldtrace/internal/matchers/creditcard"
	"fieldtrace/internal/matchers/email"
	"fieldtrace/internal/matchers/keyword"
	"fieldtrace/internal/matchers/phone"
	"fieldtrace/internal/matchers/taxid"
	"fieldtrace/internal/matchers/voterid"
)

// matcherOrder fixes the activation order so multi-check runs produce
// matches in a stable sequence.
var matcherOrder = []string{"PHONE", "CREDIT_CARD", "EMAIL", "TAX_ID", "VOTER_ID", "KEYWORD"}

// BuildMatcherSet constructs the matchers for the enabled checks. The
// keyword matcher receives its key-name list from configuration rather than
// any package-level state.
func BuildMatcherSet(enabledChecks map[string]bool, keywords []string) []detector.Matcher {
	var set []detector.Matcher
	for _, name := range matcherOrder {
		if !enabledChecks[name] {
			continue
		}
		switch name {
		case "PHONE":
			set = append(set, phone.NewMatcher())
		case "CREDIT_CARD":
			set = append(set, creditcard.NewMatcher())
		case "EMAIL":
			set = append(set, email.NewMatcher())
		case "TAX_ID":
			set = append(set, taxid.NewMatcher())
		case "VOTER_ID":
			set = append(set, voterid.NewMatcher())
		case "KEYWORD":
			set = append(set, keyword.NewMatcher(keywords))
		}
	}
	return set
}
