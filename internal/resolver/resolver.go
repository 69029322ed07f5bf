// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolver names the source field of a matched value by running an
// ordered cascade of strategies, from the most structurally certain to the
// most permissive. Payloads in this domain are frequently corrupted,
// double-encoded or hand-edited, so the cascade trades precision for
// coverage.
package resolver

import (
	"regexp"
	"strings"

	"fieldtrace/internal/structure"
)

// Strategy names, in their default cascade order.
const (
	StrategyStructural = "structural"
	StrategyKeyValue   = "keyvalue"
	StrategyContains   = "contains"
	StrategyDomain     = "domain"
)

// DomainRule maps recognized tag/attribute idioms for one entity type to a
// fixed semantic label when no exact key can be extracted.
type DomainRule struct {
	Type     string   `yaml:"type"`
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Config selects which cascade stages run (in order) and the domain-idiom
// rules for the final fallback stage.
type Config struct {
	Strategies  []string     `yaml:"strategies"`
	DomainRules []DomainRule `yaml:"domain_rules"`
}

// DefaultConfig enables the full cascade with the stock phone domain rule.
func DefaultConfig() Config {
	return Config{
		Strategies: []string{StrategyStructural, StrategyKeyValue, StrategyContains, StrategyDomain},
		DomainRules: []DomainRule{
			{
				Type:     "PHONE",
				Label:    "mobile",
				Keywords: []string{"mobile", "phone", "customer", "contact"},
			},
		},
	}
}

// keyValuePair matches a quoted-key-colon-value grammar: the value is a
// quoted string, a bracketed group, or a bare token up to a delimiter.
var keyValuePair = regexp.MustCompile(`"([A-Za-z0-9 _.\-]+)"\s*:\s*("[^"]*"|\[[^\]]*\]|\{[^}]*\}|[^,}\]\r\n]+)`)

// namedValuePair matches the "name":"...","value":"..." idiom.
var namedValuePair = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"\s*,\s*"value"\s*:\s*"([^"]*)"`)

// Resolver applies the configured cascade.
type Resolver struct {
	strategies []string
	domain     map[string]DomainRule
	tagAttr    *regexp.Regexp
}

// New creates a resolver from cfg; an empty strategy list means the full
// default cascade.
func New(cfg Config) *Resolver {
	strategies := cfg.Strategies
	if len(strategies) == 0 {
		strategies = DefaultConfig().Strategies
	}
	r := &Resolver{
		strategies: strategies,
		domain:     make(map[string]DomainRule),
		tagAttr:    regexp.MustCompile(`<\w+[^>]*\bname\s*=\s*"([^"]+)"[^>]*\bvalue\s*=\s*"([^"]*)"`),
	}
	rules := cfg.DomainRules
	if rules == nil {
		rules = DefaultConfig().DomainRules
	}
	for _, rule := range rules {
		r.domain[rule.Type] = rule
	}
	return r
}

// Resolve returns the field label for a matched value, or "" when every
// enabled strategy fails — a valid terminal outcome, not an error.
//
// The textual strategies scan the entire unescaped payload, not a window
// around the hit: when the same value sits under two different keys, every
// occurrence resolves to whichever key the scan finds first.
func (r *Resolver) Resolve(entityType, normalized, payload string, ix *structure.Index) string {
	if normalized == "" {
		return ""
	}
	for _, strategy := range r.strategies {
		var label string
		switch strategy {
		case StrategyStructural:
			label = r.resolveStructural(normalized, ix)
		case StrategyKeyValue:
			label = r.resolveKeyValue(normalized, payload, false)
		case StrategyContains:
			label = r.resolveKeyValue(normalized, payload, true)
		case StrategyDomain:
			label = r.resolveDomain(entityType, normalized, payload)
		}
		if label != "" {
			return label
		}
	}
	return ""
}

// resolveStructural scans the flattened payload in traversal order and
// returns the first path whose stringified value equals the matched value,
// or — for string leaves — contains it as a substring (covers values embedded
// in a composite string).
func (r *Resolver) resolveStructural(normalized string, ix *structure.Index) string {
	if ix == nil {
		return ""
	}
	for _, entry := range ix.Entries() {
		if entry.Path == "" {
			// A bare top-level scalar has no field name to report.
			continue
		}
		if entry.Value == normalized {
			return entry.Path
		}
		if entry.IsString && strings.Contains(entry.Value, normalized) {
			return entry.Path
		}
	}
	return ""
}

// resolveKeyValue searches the unescaped payload for a locally well-formed
// quoted-key-colon-value pair whose cleaned value equals (or, with contains
// set, contains) the matched value. This recovers fields when the payload is
// not globally valid structured data.
func (r *Resolver) resolveKeyValue(normalized, payload string, contains bool) string {
	unescaped := unescape(payload)
	for _, m := range keyValuePair.FindAllStringSubmatch(unescaped, -1) {
		value := cleanValue(m[2])
		if value == normalized || (contains && strings.Contains(value, normalized)) {
			return m[1]
		}
	}
	return ""
}

// resolveDomain recognizes entity-specific tag/attribute idioms and maps them
// to the rule's fixed semantic label rather than a discovered path.
func (r *Resolver) resolveDomain(entityType, normalized, payload string) string {
	rule, ok := r.domain[entityType]
	if !ok {
		return ""
	}
	unescaped := unescape(payload)

	// <tag name="mobile" value="..."> idiom.
	for _, m := range r.tagAttr.FindAllStringSubmatch(unescaped, -1) {
		if rule.matchesKeyword(m[1]) && strings.Contains(m[2], normalized) {
			return rule.Label
		}
	}

	// "name":"mobile","value":"..." pairing.
	for _, m := range namedValuePair.FindAllStringSubmatch(unescaped, -1) {
		if rule.matchesKeyword(m[1]) && strings.Contains(m[2], normalized) {
			return rule.Label
		}
	}

	// Generic mobile="..." attribute.
	for _, kw := range rule.Keywords {
		attr := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\s*=\s*"([^"]*)"`)
		for _, m := range attr.FindAllStringSubmatch(unescaped, -1) {
			if strings.Contains(m[1], normalized) {
				return rule.Label
			}
		}
	}

	// Any key whose name carries a rule keyword and whose value holds the
	// matched text.
	for _, m := range keyValuePair.FindAllStringSubmatch(unescaped, -1) {
		if rule.matchesKeyword(m[1]) && strings.Contains(cleanValue(m[2]), normalized) {
			return rule.Label
		}
	}
	return ""
}

func (dr DomainRule) matchesKeyword(key string) bool {
	lower := strings.ToLower(key)
	for _, kw := range dr.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// unescape undoes the common escape sequences seen in double-encoded
// payloads.
func unescape(payload string) string {
	replacer := strings.NewReplacer(`\"`, `"`, `\{`, `{`, `\}`, `}`)
	return replacer.Replace(payload)
}

// cleanValue strips optional wrapping quotes/brackets and an optional
// trailing period from a captured value.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	for len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' && last == '"') || (first == '[' && last == ']') || (first == '{' && last == '}') {
			v = strings.TrimSpace(v[1 : len(v)-1])
			continue
		}
		break
	}
	v = strings.TrimSuffix(v, ".")
	return strings.TrimSpace(v)
}
