// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/codes"

	"github.com/stacklok/linkedin-auth/pkg/auth"
	"github.com/stacklok/linkedin-auth/pkg/logger"
)

// ApplyChallenge runs the challenge leg only when the response status is 401
// and a challenge was requested (props non-nil). Otherwise it does nothing.
func (h *Handler) ApplyChallenge(rc *RequestContext, statusCode int, props *auth.Properties) error {
	if statusCode != http.StatusUnauthorized || props == nil {
		return nil
	}
	return h.Challenge(rc, props)
}

// Challenge redirects the browser to LinkedIn's authorization endpoint.
// If props has no redirect target the current request URI is used.
// props is not modified.
func (h *Handler) Challenge(rc *RequestContext, props *auth.Properties) error {
	ctx, span := h.tracer.Start(rc.Context(), "linkedin.challenge")
	defer span.End()

	if props == nil {
		props = auth.NewProperties("")
	} else {
		props = props.Clone()
	}

	baseURI := rc.BaseURI()
	redirectURI := baseURI + h.config.CallbackPath
	if props.RedirectURI == "" {
		props.RedirectURI = rc.CurrentURI()
	}

	h.correlation.Generate(rc.ResponseWriter(), rc.Request(), props)

	protected, err := h.stateCodec.Protect(props)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "protect state")
		return fmt.Errorf("failed to protect state: %w", err)
	}

	logger.Debugw("redirecting to LinkedIn",
		"authentication_type", h.config.AuthenticationType,
		"redirect_uri", redirectURI)

	rc.Redirect(h.AuthorizationURL(redirectURI, protected))
	h.metrics.recordChallenge(ctx)
	return nil
}

// AuthorizationURL builds the authorization endpoint URL. Parameters appear
// in the order LinkedIn documents; scopes are comma separated.
func (h *Handler) AuthorizationURL(redirectURI, protectedState string) string {
	return appendQuery(h.config.AuthorizationEndpoint,
		queryParam{"response_type", "code"},
		queryParam{"client_id", h.config.ClientID},
		queryParam{"redirect_uri", redirectURI},
		queryParam{"scope", strings.Join(h.config.Scopes, ",")},
		queryParam{"state", protectedState},
	)
}
