// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/stacklok/linkedin-auth/pkg/auth"
	"github.com/stacklok/linkedin-auth/pkg/auth/linkedin"
	"github.com/stacklok/linkedin-auth/pkg/logger"
)

// LogSignIn is a sign-in manager that only records who signed in. The demo
// keeps no sessions.
var LogSignIn = linkedin.SignInManagerFunc(
	func(rc *linkedin.RequestContext, props *auth.Properties, identity *auth.Identity) error {
		logger.Infow("user signed in",
			"subject", identity.Subject(),
			"authentication_type", identity.AuthenticationType,
			"redirect_uri", props.RedirectURI,
			"request_id", requestID(rc))
		return nil
	})

// NewProvider returns the demo notification hooks. now is the clock used to
// compute token expiry.
func NewProvider(now func() time.Time) linkedin.Provider {
	return linkedin.ProviderFuncs{
		OnAuthenticated: func(_ context.Context, c *linkedin.AuthenticatedContext) error {
			tok := (&linkedin.TokenResponse{AccessToken: c.AccessToken, ExpiresIn: c.ExpiresIn}).OAuth2Token(now())
			logger.Debugw("LinkedIn profile mapped",
				"subject", c.Identity.Subject(),
				"token_expiry", tok.Expiry,
				"token_valid", tok.Valid())
			return nil
		},
		OnReturnEndpoint: func(_ context.Context, c *linkedin.ReturnEndpointContext) error {
			if c.Identity == nil {
				logger.Warnw("LinkedIn sign-in did not produce an identity", "request_id", requestID(c.Request))
			}
			return nil
		},
	}
}

func requestID(rc *linkedin.RequestContext) string {
	if rc == nil {
		return ""
	}
	return middleware.GetReqID(rc.Context())
}
