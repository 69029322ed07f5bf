// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package structure builds a searchable flattened view of a payload's
// structure: a path→value listing produced by recursively walking the parsed
// payload, including JSON embedded inside string values.
package structure

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entry is one leaf scalar of the flattened payload. Path is the
// dot/bracket-joined location ("data.mobile", "contacts[2].phone"); Value is
// the scalar stringified; IsString records whether the leaf was a JSON string
// (substring field resolution only applies to string leaves).
type Entry struct {
	Path     string
	Value    string
	IsString bool
}

// Index is the flattened view of one payload. Entries preserve traversal
// order so that iteration is deterministic: when several paths could satisfy
// a lookup, the first in document order wins. Paths are not deduplicated;
// colliding paths from malformed nesting are kept in order (last writer would
// win in a map, here the earlier entry simply matches first).
type Index struct {
	entries []Entry
}

// Build parses the payload and flattens every reachable leaf scalar. It
// never fails: a payload that does not parse yields a partial or empty index,
// covering whatever prefix of the structure decoded cleanly.
func Build(payload string) *Index {
	ix := &Index{}
	ix.flattenString("", payload)
	return ix
}

// Entries returns the flattened leaves in traversal order.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Len returns the number of flattened leaves.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// flattenString decodes s as JSON and flattens it under prefix. Returns
// false when s does not begin with a decodable value; entries decoded before
// a mid-stream error are kept.
func (ix *Index) flattenString(prefix, s string) bool {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber() // keep numeric leaves in their literal form

	before := len(ix.entries)
	if err := ix.flattenValue(dec, prefix); err != nil {
		// Degrade to whatever subtree flattened cleanly.
		return len(ix.entries) > before
	}
	return true
}

// flattenValue consumes one JSON value from dec and records its leaves.
func (ix *Index) flattenValue(dec *json.Decoder, prefix string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return ix.flattenToken(dec, prefix, tok)
}

func (ix *Index) flattenToken(dec *json.Decoder, prefix string, tok json.Token) error {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return ix.flattenObject(dec, prefix)
		case '[':
			return ix.flattenArray(dec, prefix)
		default:
			return fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		ix.leafString(prefix, t)
	case json.Number:
		ix.append(Entry{Path: prefix, Value: t.String()})
	case bool:
		ix.append(Entry{Path: prefix, Value: strconv.FormatBool(t)})
	case nil:
		ix.append(Entry{Path: prefix, Value: "null"})
	}
	return nil
}

func (ix *Index) flattenObject(dec *json.Decoder, prefix string) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("object key is %T, not string", keyTok)
		}
		if err := ix.flattenValue(dec, joinKey(prefix, key)); err != nil {
			return err
		}
	}
	// Consume the closing '}'.
	_, err := dec.Token()
	return err
}

func (ix *Index) flattenArray(dec *json.Decoder, prefix string) error {
	for i := 0; dec.More(); i++ {
		if err := ix.flattenValue(dec, fmt.Sprintf("%s[%d]", prefix, i)); err != nil {
			return err
		}
	}
	// Consume the closing ']'.
	_, err := dec.Token()
	return err
}

// leafString records a string leaf, first opportunistically re-parsing it as
// nested JSON: a string whose trimmed content begins with '{' or '[' is
// flattened under the same path, and kept as a plain leaf when that fails.
func (ix *Index) leafString(prefix, s string) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if ix.flattenString(prefix, trimmed) {
			return
		}
	}
	ix.append(Entry{Path: prefix, Value: s, IsString: true})
}

func (ix *Index) append(e Entry) {
	ix.entries = append(ix.entries, e)
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
