// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

// Record is one identifier+timestamp+payload triple extracted from the corpus.
// Records are created once during loading and never mutated afterwards.
type Record struct {
	ID        string
	Timestamp string
	Payload   string
}

// Hit is a single detection produced by a Matcher: the matched text and its
// byte span within the payload. Hits from one payload are non-overlapping and
// ordered left to right.
type Hit struct {
	Text  string
	Start int
	End   int
}

// Matcher detects one entity type within a payload.
//
// Detect must be a pure function of the payload text: no shared state across
// records. Normalize converts matched text into the value used for field
// lookup (e.g. a card number with separators stripped); the original matched
// text stays user-visible.
type Matcher interface {
	Name() string
	Detect(payload string) []Hit
	Normalize(matched string) string
}

// Match represents a detected value attributed to its source field.
// FieldLabel is a dot/bracket-joined path (e.g. "data.mobile",
// "contacts[2].phone") or empty when no resolution strategy succeeded —
// an empty label is a valid terminal outcome, not an error.
type Match struct {
	RecordID   string `json:"record_id"`
	Timestamp  string `json:"timestamp"`
	Payload    string `json:"payload,omitempty"`
	Type       string `json:"type"`
	Text       string `json:"matched_text"`
	Normalized string `json:"normalized_value"`
	FieldLabel string `json:"field_label"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

// Summary holds the run-level counters reported alongside the match list.
type Summary struct {
	RecordsSeen      int `json:"records_seen"`
	RecordsWithMatch int `json:"records_with_match"`
	TotalMatches     int `json:"total_matches"`
}
