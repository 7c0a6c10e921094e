// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"github.com/stacklok/linkedin-auth/pkg/auth"
)

// LinkedIn specific claim types.
const (
	ClaimTypeFirstName = "urn:linkedin:firstname"
	ClaimTypeLastName  = "urn:linkedin:lastname"
	ClaimTypeLink      = "urn:linkedin:link"
)

// Profile keys as returned by the v1 API field selector.
const (
	keyID               = "id"
	keyFirstName        = "first-name"
	keyLastName         = "last-name"
	keyFormattedName    = "formatted-name"
	keyEmailAddress     = "email-address"
	keyPublicProfileURL = "public-profile-url"
)

// Profile is the normalized view of a LinkedIn member.
type Profile struct {
	ID        string
	UserName  string
	Email     string
	FirstName string
	LastName  string
	URL       string
}

// ProfileFromUser extracts the known fields from a raw profile object.
// Missing or non-string fields are empty.
func ProfileFromUser(user map[string]any) Profile {
	return Profile{
		ID:        stringField(user, keyID),
		UserName:  stringField(user, keyFormattedName),
		Email:     stringField(user, keyEmailAddress),
		FirstName: stringField(user, keyFirstName),
		LastName:  stringField(user, keyLastName),
		URL:       stringField(user, keyPublicProfileURL),
	}
}

// MapIdentity builds the claims identity for a raw profile. A claim is added
// only for a non-empty field; every claim is issued by authenticationType.
func MapIdentity(user map[string]any, authenticationType string) (Profile, *auth.Identity) {
	profile := ProfileFromUser(user)
	identity := auth.NewIdentity(authenticationType)

	for _, f := range []struct {
		claimType string
		value     string
	}{
		{auth.ClaimTypeNameIdentifier, profile.ID},
		{auth.ClaimTypeName, profile.UserName},
		{auth.ClaimTypeEmail, profile.Email},
		{ClaimTypeFirstName, profile.FirstName},
		{ClaimTypeLastName, profile.LastName},
		{ClaimTypeLink, profile.URL},
	} {
		if f.value != "" {
			identity.AddClaim(auth.NewStringClaim(f.claimType, f.value, authenticationType))
		}
	}

	return profile, identity
}

func stringField(user map[string]any, key string) string {
	switch v := user[key].(type) {
	case string:
		return v
	case map[string]any:
		// elements that carry attributes keep their text under #text
		if text, ok := v["#text"].(string); ok {
			return text
		}
	}
	return ""
}
