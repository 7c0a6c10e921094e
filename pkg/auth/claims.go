// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package auth

import "fmt"

// Well-known claim types. The identity-claims URIs are the portable names used
// by WS-Federation style consumers; the urn:linkedin:* types are provider specific.
const (
	ClaimTypeNameIdentifier = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	ClaimTypeName           = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	ClaimTypeEmail          = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	ClaimTypeRole           = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// ValueTypeString is the value type attached to every string claim.
const ValueTypeString = "http://www.w3.org/2001/XMLSchema#string"

// Claim is a typed assertion about an identity.
type Claim struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	ValueType string `json:"valueType"`
	Issuer    string `json:"issuer"`
}

// NewStringClaim returns a claim with the XML schema string value type.
func NewStringClaim(claimType, value, issuer string) Claim {
	return Claim{
		Type:      claimType,
		Value:     value,
		ValueType: ValueTypeString,
		Issuer:    issuer,
	}
}

// String renders the claim as "type: value".
func (c Claim) String() string {
	return fmt.Sprintf("%s: %s", c.Type, c.Value)
}
