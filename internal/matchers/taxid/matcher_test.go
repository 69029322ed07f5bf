// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxid

import "testing"

func TestDetect(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		name    string
		payload string
		want    []string
	}{
		{"bare", "pan ABCDE1234F filed", []string{"ABCDE1234F"}},
		{"json field", `{"pan":"FGHIJ5678K"}`, []string{"FGHIJ5678K"}},
		{"letter abutting blocks", "XABCDE1234F", nil},
		{"digit abutting blocks", "ABCDE1234F5", nil},
		{"wrong shape", "ABCD1234F", nil},
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
			}
		})
	}
}
