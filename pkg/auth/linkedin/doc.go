// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package linkedin implements the server side of the OAuth2 authorization code
// flow against LinkedIn's legacy (v1) API.
//
// # Architecture
//
// The Handler drives two independent HTTP legs:
//
//   - Challenge: build the callback URL, mint a correlation value, protect the
//     return properties into the state parameter and redirect (302) to the
//     LinkedIn authorization endpoint.
//   - Callback: on a request to the configured callback path, recover the
//     properties from state, validate correlation, exchange the code for a
//     token, fetch and unwrap the legacy profile payload, map it to claims and
//     hand the resulting ticket to the sign-in collaborator.
//
// No state is kept between the legs other than what travels in the state
// parameter and the correlation cookie, so a Handler is safe for concurrent use.
//
// # Collaborators
//
// Callers plug in behaviour through small interfaces:
//
//	Provider        Authenticated and ReturnEndpoint hooks (ProviderFuncs adapts functions)
//	SignInManager   persists the granted identity, e.g. into an application cookie
//	state.Codec     protects return properties (SignedCodec by default)
//	CorrelationGuard CSRF correlation (correlation.Guard by default)
//	TokenExchanger  code-for-token exchange (TokenClient by default)
//	ProfileFetcher  profile retrieval (ProfileClient by default)
//
// # Usage
//
//	h, err := linkedin.NewHandler(linkedin.Config{
//	    ClientID:                   id,
//	    ClientSecret:               secret,
//	    Scopes:                     []string{"r_basicprofile", "r_emailaddress"},
//	    SignInAsAuthenticationType: "ApplicationCookie",
//	}, linkedin.WithSignInManager(sessions), linkedin.WithStateCodec(codec))
//	if err != nil {
//	    return err
//	}
//	router.Use(h.Middleware)
//
// Downstream handlers start a login with RequestChallenge followed by a 401.
//
// Recovered failures (bad state, correlation mismatch, provider or parse
// errors) never surface as errors: they produce a ticket without an identity
// and the browser is sent back to its redirect target with error=access_denied.
// Errors returned by collaborators propagate to the caller.
package linkedin
