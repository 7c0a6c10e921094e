// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package auth provides the authentication data model shared by the handler
// packages: claims identities, return properties and authentication tickets.
package auth

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Identity represents an authenticated principal as an ordered set of claims.
// This is the value handed to the sign-in collaborator after a successful callback.
type Identity struct {
	// AuthenticationType labels the middleware that produced the identity (e.g. "LinkedIn").
	AuthenticationType string

	// NameClaimType is the claim type that holds the display name.
	NameClaimType string

	// RoleClaimType is the claim type that holds roles.
	RoleClaimType string

	claims []Claim
}

// NewIdentity creates an empty identity using the default name and role claim types.
func NewIdentity(authenticationType string) *Identity {
	return &Identity{
		AuthenticationType: authenticationType,
		NameClaimType:      ClaimTypeName,
		RoleClaimType:      ClaimTypeRole,
	}
}

// AddClaim appends a claim to the identity.
func (i *Identity) AddClaim(c Claim) {
	i.claims = append(i.claims, c)
}

// Claims returns a copy of the identity's claims in insertion order.
func (i *Identity) Claims() []Claim {
	if i == nil {
		return nil
	}
	return slices.Clone(i.claims)
}

// FindFirst returns the first claim of the given type.
func (i *Identity) FindFirst(claimType string) (Claim, bool) {
	if i == nil {
		return Claim{}, false
	}
	for _, c := range i.claims {
		if c.Type == claimType {
			return c, true
		}
	}
	return Claim{}, false
}

// HasClaim reports whether a claim of the given type exists.
func (i *Identity) HasClaim(claimType string) bool {
	_, ok := i.FindFirst(claimType)
	return ok
}

// Subject returns the name-identifier claim value, or "" if absent.
func (i *Identity) Subject() string {
	c, _ := i.FindFirst(ClaimTypeNameIdentifier)
	return c.Value
}

// Name returns the value of the name claim, or "" if absent.
func (i *Identity) Name() string {
	if i == nil {
		return ""
	}
	c, _ := i.FindFirst(i.NameClaimType)
	return c.Value
}

// WithAuthenticationType returns a copy of the identity relabelled with the
// given authentication type. Claims, including their issuers, are kept as-is.
func (i *Identity) WithAuthenticationType(authenticationType string) *Identity {
	return &Identity{
		AuthenticationType: authenticationType,
		NameClaimType:      i.NameClaimType,
		RoleClaimType:      i.RoleClaimType,
		claims:             slices.Clone(i.claims),
	}
}

// String returns a compact representation suitable for logs.
// Only the subject is printed so personal data does not leak into log output.
func (i *Identity) String() string {
	if i == nil {
		return "<nil>"
	}

	return fmt.Sprintf("Identity{AuthenticationType:%q, Subject:%q}", i.AuthenticationType, i.Subject())
}

// MarshalJSON implements json.Marshaler. Claim values other than the subject
// are redacted so a logged or audited identity carries no personal data.
func (i *Identity) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("null"), nil
	}

	type SafeClaim struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	type SafeIdentity struct {
		AuthenticationType string      `json:"authenticationType"`
		Subject            string      `json:"subject"`
		Claims             []SafeClaim `json:"claims"`
	}

	claims := make([]SafeClaim, 0, len(i.claims))
	for _, c := range i.claims {
		value := "REDACTED"
		if c.Type == ClaimTypeNameIdentifier {
			value = c.Value
		}
		claims = append(claims, SafeClaim{Type: c.Type, Value: value})
	}

	return json.Marshal(&SafeIdentity{
		AuthenticationType: i.AuthenticationType,
		Subject:            i.Subject(),
		Claims:             claims,
	})
}
