// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdentity() *Identity {
	id := NewIdentity("LinkedIn")
	id.AddClaim(NewStringClaim(ClaimTypeNameIdentifier, "123", "LinkedIn"))
	id.AddClaim(NewStringClaim(ClaimTypeName, "Ada Lovelace", "LinkedIn"))
	id.AddClaim(NewStringClaim(ClaimTypeEmail, "ada@example.com", "LinkedIn"))
	return id
}

func TestIdentity_Accessors(t *testing.T) {
	t.Parallel()

	id := newTestIdentity()

	assert.Equal(t, "123", id.Subject())
	assert.Equal(t, "Ada Lovelace", id.Name())
	assert.True(t, id.HasClaim(ClaimTypeEmail))
	assert.False(t, id.HasClaim("urn:linkedin:lastname"))

	c, ok := id.FindFirst(ClaimTypeEmail)
	require.True(t, ok)
	assert.Equal(t, ValueTypeString, c.ValueType)
	assert.Equal(t, "LinkedIn", c.Issuer)

	claims := id.Claims()
	require.Len(t, claims, 3)
	claims[0].Value = "mutated"
	assert.Equal(t, "123", id.Subject(), "Claims must return a copy")
}

func TestIdentity_NilReceiver(t *testing.T) {
	t.Parallel()

	var id *Identity

	assert.Equal(t, "<nil>", id.String())
	assert.Empty(t, id.Subject())
	assert.Empty(t, id.Name())
	assert.Nil(t, id.Claims())

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestIdentity_WithAuthenticationType(t *testing.T) {
	t.Parallel()

	id := newTestIdentity()
	retagged := id.WithAuthenticationType("ApplicationCookie")

	assert.Equal(t, "ApplicationCookie", retagged.AuthenticationType)
	assert.Equal(t, "LinkedIn", id.AuthenticationType, "original must be untouched")
	assert.Equal(t, id.Claims(), retagged.Claims())

	for _, c := range retagged.Claims() {
		assert.Equal(t, "LinkedIn", c.Issuer, "claim issuers are preserved")
	}

	retagged.AddClaim(NewStringClaim("extra", "x", "app"))
	assert.False(t, id.HasClaim("extra"))
}

func TestIdentity_StringAndJSONRedaction(t *testing.T) {
	t.Parallel()

	id := newTestIdentity()

	s := id.String()
	assert.Contains(t, s, `Subject:"123"`)
	assert.NotContains(t, s, "ada@example.com")

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ada@example.com")
	assert.NotContains(t, string(data), "Ada Lovelace")
	assert.Contains(t, string(data), `"subject":"123"`)
	assert.Contains(t, string(data), "REDACTED")
}

func TestTicket_Authenticated(t *testing.T) {
	t.Parallel()

	var nilTicket *Ticket
	assert.False(t, nilTicket.Authenticated())
	assert.False(t, (&Ticket{Properties: NewProperties("/")}).Authenticated())
	assert.True(t, (&Ticket{Identity: newTestIdentity()}).Authenticated())
}

func TestProperties_ItemsAndClone(t *testing.T) {
	t.Parallel()

	p := &Properties{RedirectURI: "https://app.example.com/home"}
	_, ok := p.Get(CorrelationKey)
	assert.False(t, ok)

	p.Set(CorrelationKey, "abc")
	v, ok := p.Get(CorrelationKey)
	require.True(t, ok)
	assert.Equal(t, "abc", v)

	c := p.Clone()
	c.Set(CorrelationKey, "changed")
	v, _ = p.Get(CorrelationKey)
	assert.Equal(t, "abc", v)

	p.Delete(CorrelationKey)
	_, ok = p.Get(CorrelationKey)
	assert.False(t, ok)

	var nilProps *Properties
	assert.Nil(t, nilProps.Clone())
	_, ok = nilProps.Get("x")
	assert.False(t, ok)
}
