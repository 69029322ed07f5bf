// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package keyword

import (
	"regexp"
	"sort"
	"strings"

	"fieldtrace/internal/detector"
	"fieldtrace/internal/structure"
)

// Matcher detects keyword-tagged fields. Unlike the value-grammar matchers it
// is triggered by configured key names ("name", "policy number", ...) rather
// than a value shape: when the payload parses as a structure, detection is a
// key lookup over the flattened view; otherwise a textual key:value grammar
// is applied to the raw payload.
type Matcher struct {
	keywords []string
	textual  []*regexp.Regexp
}

// NewMatcher creates a keyword matcher for the given key names. The keyword
// list is explicit configuration, not shared state; each run constructs its
// own matcher.
func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{keywords: keywords}
	for _, kw := range keywords {
		// "policy number" should also hit policy_number / policy-number.
		pattern := strings.ReplaceAll(regexp.QuoteMeta(kw), `\ `, `[\s_-]+`)
		m.textual = append(m.textual,
			regexp.MustCompile(`(?i)"?\b`+pattern+`\b"?\s*[:=]\s*"?([^",;}\r\n]+)"?`))
	}
	return m
}

func (m *Matcher) Name() string {
	return "KEYWORD"
}

// Detect returns keyword-field hits in left-to-right span order.
func (m *Matcher) Detect(payload string) []detector.Hit {
	ix := structure.Build(payload)
	var hits []detector.Hit
	if hasFields(ix) {
		hits = m.detectStructural(payload, ix)
	} else {
		hits = m.detectTextual(payload)
	}
	return dedupe(hits)
}

// hasFields reports whether the index holds at least one named leaf. Free
// text starting with a bare scalar ("42 name: ...") decodes to a single
// entry with an empty path; that is not a structure for key lookup, so such
// payloads take the textual grammar instead.
func hasFields(ix *structure.Index) bool {
	for _, entry := range ix.Entries() {
		if entry.Path != "" {
			return true
		}
	}
	return false
}

// detectStructural walks the flattened payload and hits every leaf whose
// final key segment matches a configured keyword. The hit span is the literal
// occurrence of the leaf value in the payload; leaves whose value does not
// appear literally (escaped nested forms) are skipped since a hit must be a
// byte-range substring of the payload.
func (m *Matcher) detectStructural(payload string, ix *structure.Index) []detector.Hit {
	var hits []detector.Hit
	for _, entry := range ix.Entries() {
		if entry.Value == "" || !m.keyMatches(entry.Path) {
			continue
		}
		start := strings.Index(payload, entry.Value)
		if start < 0 {
			continue
		}
		hits = append(hits, detector.Hit{
			Text:  entry.Value,
			Start: start,
			End:   start + len(entry.Value),
		})
	}
	return hits
}

// detectTextual applies the keyword (:|=) value-until-delimiter grammar.
func (m *Matcher) detectTextual(payload string) []detector.Hit {
	var hits []detector.Hit
	for _, re := range m.textual {
		for _, span := range re.FindAllStringSubmatchIndex(payload, -1) {
			start, end := span[2], span[3]
			if start < 0 {
				continue
			}
			// Trim trailing whitespace and a closing period from the value.
			for end > start && (payload[end-1] == ' ' || payload[end-1] == '\t' || payload[end-1] == '.') {
				end--
			}
			if end == start {
				continue
			}
			hits = append(hits, detector.Hit{
				Text:  payload[start:end],
				Start: start,
				End:   end,
			})
		}
	}
	return hits
}

// keyMatches reports whether the final segment of path names a configured
// keyword, comparing case-insensitively with spaces, underscores and hyphens
// ignored.
func (m *Matcher) keyMatches(path string) bool {
	seg := path
	if i := strings.LastIndex(seg, "."); i >= 0 {
		seg = seg[i+1:]
	}
	if i := strings.Index(seg, "["); i >= 0 {
		seg = seg[:i]
	}
	canon := canonicalKey(seg)
	for _, kw := range m.keywords {
		if canon == canonicalKey(kw) {
			return true
		}
	}
	return false
}

func canonicalKey(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '-' {
			return -1
		}
		return r
	}, s)
}

// Normalize trims surrounding whitespace from the matched value.
func (m *Matcher) Normalize(matched string) string {
	return strings.TrimSpace(matched)
}

// dedupe sorts hits into span order and drops overlapping duplicates.
func dedupe(hits []detector.Hit) []detector.Hit {
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Start != hits[j].Start {
			return hits[i].Start < hits[j].Start
		}
		return hits[i].End > hits[j].End
	})
	out := hits[:1]
	for _, h := range hits[1:] {
		if h.Start >= out[len(out)-1].End {
			out = append(out, h)
		}
	}
	return out
}
