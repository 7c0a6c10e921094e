// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"net/http"

	"github.com/stacklok/linkedin-auth/pkg/auth"
)

//go:generate mockgen -destination=mocks/mock_interfaces.go -package=mocks -source=interfaces.go Provider,SignInManager,TokenExchanger,ProfileFetcher,CorrelationGuard

// Provider receives notifications during the callback leg.
// Errors returned from either method abort the callback and propagate to the caller.
type Provider interface {
	// Authenticated runs after the profile has been mapped to an identity.
	// It may augment or replace the identity and the properties.
	Authenticated(ctx context.Context, c *AuthenticatedContext) error

	// ReturnEndpoint runs once per callback with the final ticket. It may change
	// the redirect target or sign-in type, or complete the request itself.
	ReturnEndpoint(ctx context.Context, c *ReturnEndpointContext) error
}

// SignInManager persists an authenticated identity for the application.
type SignInManager interface {
	SignIn(rc *RequestContext, props *auth.Properties, identity *auth.Identity) error
}

// TokenExchanger trades an authorization code for an access token.
type TokenExchanger interface {
	ExchangeCode(ctx context.Context, code, redirectURI, clientID, clientSecret string) (*TokenResponse, error)
}

// ProfileFetcher retrieves the raw profile object for an access token.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, accessToken string) (map[string]any, error)
}

// CorrelationGuard mints and checks the CSRF correlation value.
type CorrelationGuard interface {
	Generate(w http.ResponseWriter, r *http.Request, props *auth.Properties)
	Validate(w http.ResponseWriter, r *http.Request, props *auth.Properties) bool
}

// SignInManagerFunc adapts a function to SignInManager.
type SignInManagerFunc func(rc *RequestContext, props *auth.Properties, identity *auth.Identity) error

// SignIn implements SignInManager.
func (f SignInManagerFunc) SignIn(rc *RequestContext, props *auth.Properties, identity *auth.Identity) error {
	return f(rc, props, identity)
}
