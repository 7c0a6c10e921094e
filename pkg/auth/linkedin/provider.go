// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"fmt"
	"time"

	"github.com/stacklok/linkedin-auth/pkg/auth"
)

// AuthenticatedContext is passed to Provider.Authenticated.
type AuthenticatedContext struct {
	// Request is the callback request.
	Request *RequestContext

	// User is the unwrapped profile object as returned by LinkedIn.
	User map[string]any

	// Profile holds the normalized fields extracted from User.
	Profile Profile

	// AccessToken is the bearer token for further LinkedIn API calls. Never log it.
	AccessToken string

	// ExpiresIn is the token lifetime reported by LinkedIn, zero if unknown.
	ExpiresIn time.Duration

	// Identity is the mapped claims identity. Hooks may replace it.
	Identity *auth.Identity

	// Properties are the return properties recovered from state.
	Properties *auth.Properties
}

// String omits the access token.
func (c *AuthenticatedContext) String() string {
	return fmt.Sprintf("AuthenticatedContext{Identity:%s, ExpiresIn:%s}", c.Identity, c.ExpiresIn)
}

// ReturnEndpointContext is passed to Provider.ReturnEndpoint.
type ReturnEndpointContext struct {
	// Request is the callback request.
	Request *RequestContext

	// Identity is nil when authentication failed.
	Identity *auth.Identity

	// Properties are the recovered return properties.
	Properties *auth.Properties

	// SignInAsAuthenticationType is the sign-in type that will be granted. Empty disables sign-in.
	SignInAsAuthenticationType string

	// RedirectURI is where the browser will be sent. Empty disables the redirect.
	RedirectURI string

	completed bool
}

// RequestCompleted marks the response as fully handled; no redirect will be issued.
func (c *ReturnEndpointContext) RequestCompleted() {
	c.completed = true
}

// IsRequestCompleted reports whether RequestCompleted was called.
func (c *ReturnEndpointContext) IsRequestCompleted() bool {
	return c.completed
}

// ProviderFuncs implements Provider with optional function fields. Nil fields are no-ops.
type ProviderFuncs struct {
	OnAuthenticated  func(ctx context.Context, c *AuthenticatedContext) error
	OnReturnEndpoint func(ctx context.Context, c *ReturnEndpointContext) error
}

var _ Provider = ProviderFuncs{}

// Authenticated implements Provider.
func (p ProviderFuncs) Authenticated(ctx context.Context, c *AuthenticatedContext) error {
	if p.OnAuthenticated == nil {
		return nil
	}
	return p.OnAuthenticated(ctx, c)
}

// ReturnEndpoint implements Provider.
func (p ProviderFuncs) ReturnEndpoint(ctx context.Context, c *ReturnEndpointContext) error {
	if p.OnReturnEndpoint == nil {
		return nil
	}
	return p.OnReturnEndpoint(ctx, c)
}
