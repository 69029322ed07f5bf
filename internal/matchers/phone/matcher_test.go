// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"testing"
)

func TestDetect_Boundaries(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		name    string
		payload string
		want    []string
	}{
		{"bare body", "call 9876543210 now", []string{"9876543210"}},
		{"extra leading digit blocks", "19876543210", nil},
		{"extra trailing digit blocks", "98765432101", nil},
		{"letters do not block", "9876543210abc", []string{"9876543210"}},
		{"international prefix", "+91-9876543210", []string{"+91-9876543210"}},
		{"country code prefix", "919876543210", []string{"919876543210"}},
		{"trunk prefix", "09876543210", []string{"09876543210"}},
		{"foreign plus prefix rejected", "+19876543210", nil},
		{"body must start 6-9", "1234567890", nil},
		{"two numbers", "9876543210 and 9123456789", []string{"9876543210", "9123456789"}},
		{"inside json", `{"phone":"9876543210"}`, []string{"9876543210"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hits := m.Detect(tc.payload)
			if len(hits) != len(tc.want) {
				t.Fatalf("payload %q: expected %d hits, got %d (%v)", tc.payload, len(tc.want), len(hits), hits)
			}
			for i, want := range tc.want {
				if hits[i].Text != want {
					t.Errorf("hit %d: expected %q, got %q", i, want, hits[i].Text)
				}
				if tc.payload[hits[i].Start:hits[i].End] != hits[i].Text {
					t.Errorf("hit %d: span [%d:%d] does not reproduce matched text", i, hits[i].Start, hits[i].End)
				}
			}
		})
	}
}

func TestDetect_SpanOrder(t *testing.T) {
	m := NewMatcher()
	hits := m.Detect("first 9876543210 then 9123456789 last 9988776655")
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Start < hits[i-1].End {
			t.Errorf("hits out of left-to-right order: %v", hits)
		}
	}
}

func TestNormalize(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"+91-9876543210", "9876543210"},
		{"+91 9876543210", "9876543210"},
		{"919876543210", "9876543210"},
		{"09876543210", "9876543210"},
	}
	for _, tc := range cases {
		if got := m.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
