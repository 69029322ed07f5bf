// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldtrace/internal/structure"
)

func TestResolve_StructuralExact(t *testing.T) {
	r := New(DefaultConfig())
	payload := `{"phone":"9876543210","note":"call later"}`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "phone", label)
}

func TestResolve_StructuralSubstringInCompositeString(t *testing.T) {
	r := New(DefaultConfig())
	payload := `{"note":"call 9876543210 again"}`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "note", label)
}

func TestResolve_StructuralNestedJSONInString(t *testing.T) {
	r := New(DefaultConfig())
	payload := `{"data":"{\"mobile\":\"9876543210\"}"}`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "data.mobile", label)
}

func TestResolve_FirstQualifyingPathWins(t *testing.T) {
	r := New(DefaultConfig())
	payload := `{"primary":"9876543210","backup":"9876543210"}`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "primary", label)
}

func TestResolve_StructuralBeatsTextual(t *testing.T) {
	r := New(DefaultConfig())
	// The index and the payload text disagree on the key; the structural
	// strategy runs first and must win.
	ix := structure.Build(`{"indexed":"9876543210"}`)
	payload := `{"textual":"9876543210"}`

	label := r.Resolve("PHONE", "9876543210", payload, ix)
	assert.Equal(t, "indexed", label)
}

func TestResolve_KeyValueOnMalformedPayload(t *testing.T) {
	r := New(DefaultConfig())
	// Globally invalid structure with one locally well-formed pair.
	payload := `garbage garbage "mobile":"9876543210" more garbage`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "mobile", label)
}

func TestResolve_KeyValueUndoesEscapes(t *testing.T) {
	r := New(DefaultConfig())
	payload := `prefix \{\"contact_no\":\"9876543210\"\} suffix`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "contact_no", label)
}

func TestResolve_KeyValueStripsTrailingPeriod(t *testing.T) {
	r := New(DefaultConfig())
	payload := `note "helpline":"9876543210." end`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "helpline", label)
}

func TestResolve_ContainsFallback(t *testing.T) {
	r := New(DefaultConfig())
	payload := `broken "remark":"num=9876543210;ok" tail`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "remark", label)
}

func TestResolve_DomainTagIdiom(t *testing.T) {
	r := New(DefaultConfig())
	payload := `<field name="mobile" value="9876543210"/>`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "mobile", label)
}

func TestResolve_DomainAttributeIdiom(t *testing.T) {
	r := New(DefaultConfig())
	payload := `record mobile="9876543210" status="ok"`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "mobile", label)
}

func TestResolve_DomainNameValuePairing(t *testing.T) {
	r := New(Config{Strategies: []string{StrategyDomain}})
	payload := `"name":"customer mobile","value":"9876543210"`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "mobile", label)
}

func TestResolve_DomainOnlyForConfiguredType(t *testing.T) {
	r := New(DefaultConfig())
	payload := `<field name="mobile" value="ABCDE1234F"/>`

	label := r.Resolve("TAX_ID", "ABCDE1234F", payload, structure.Build(payload))
	assert.Equal(t, "", label)
}

func TestResolve_EmptyLabelIsTerminal(t *testing.T) {
	r := New(DefaultConfig())
	payload := `completely unstructured 9876543210 text`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "", label)
}

func TestResolve_DisabledStrategiesAreSkipped(t *testing.T) {
	// Only the domain stage is enabled; the structural index would resolve
	// "phone" but must not run, and no domain idiom is present.
	r := New(Config{
		Strategies:  []string{StrategyDomain},
		DomainRules: []DomainRule{{Type: "PHONE", Label: "mobile", Keywords: []string{"mobile"}}},
	})
	payload := `{"phone":"9876543210"}`

	label := r.Resolve("PHONE", "9876543210", payload, structure.Build(payload))
	assert.Equal(t, "", label)
}
