// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/linkedin-auth/pkg/auth"
	"github.com/stacklok/linkedin-auth/pkg/logger"
)

// InvokeCallback handles the request if its path is the callback path.
// It returns true when the response has been completed. A non-nil error comes
// from a collaborator (hook or sign-in manager) and is left to the caller.
func (h *Handler) InvokeCallback(rc *RequestContext) (bool, error) {
	if h.config.CallbackPath == "" || rc.Path() != h.config.CallbackPath {
		return false, nil
	}

	ticket, err := h.Authenticate(rc)
	if err != nil {
		return true, err
	}
	if ticket.Properties == nil {
		logger.Warn("invalid return state, unable to redirect")
		rc.SetStatusCode(http.StatusInternalServerError)
		return true, nil
	}

	ectx := &ReturnEndpointContext{
		Request:                    rc,
		Identity:                   ticket.Identity,
		Properties:                 ticket.Properties,
		SignInAsAuthenticationType: h.config.SignInAsAuthenticationType,
		RedirectURI:                ticket.Properties.RedirectURI,
	}
	if err := h.provider.ReturnEndpoint(rc.Context(), ectx); err != nil {
		return true, fmt.Errorf("return endpoint hook failed: %w", err)
	}

	// Sign-in runs before the redirect so the manager can still set response headers.
	if ectx.SignInAsAuthenticationType != "" && ectx.Identity != nil {
		grant := ectx.Identity
		if grant.AuthenticationType != ectx.SignInAsAuthenticationType {
			grant = grant.WithAuthenticationType(ectx.SignInAsAuthenticationType)
		}
		if h.signIn == nil {
			logger.Warnw("no sign-in manager configured, skipping sign-in",
				"sign_in_as", ectx.SignInAsAuthenticationType)
		} else if err := h.signIn.SignIn(rc, ectx.Properties, grant); err != nil {
			return true, fmt.Errorf("sign-in failed: %w", err)
		}
	}

	if !ectx.IsRequestCompleted() && ectx.RedirectURI != "" {
		target := ectx.RedirectURI
		if ectx.Identity == nil {
			target = addQueryString(target, "error", "access_denied")
		}
		rc.Redirect(target)
		ectx.RequestCompleted()
	}

	return ectx.IsRequestCompleted(), nil
}

// Authenticate runs the callback leg up to the ticket. Protocol failures are
// logged and produce a ticket without identity; Properties is nil only when
// the state could not be recovered. The error is non-nil only when the
// Authenticated hook fails.
func (h *Handler) Authenticate(rc *RequestContext) (*auth.Ticket, error) {
	ctx, span := h.tracer.Start(rc.Context(), "linkedin.authenticate")
	defer span.End()

	query := rc.Request().URL.Query()
	code := singleValue(query, "code")
	protected := singleValue(query, "state")

	props, err := h.stateCodec.Unprotect(protected)
	if err != nil {
		logger.Warnw("rejected LinkedIn callback state",
			"authentication_type", h.config.AuthenticationType, "error", err)
		h.fail(span, outcomeInvalidState, err)
		h.metrics.recordCallback(ctx, outcomeInvalidState)
		return &auth.Ticket{}, nil
	}

	if !h.correlation.Validate(rc.ResponseWriter(), rc.Request(), props) {
		h.fail(span, outcomeCorrelationFailed, nil)
		h.metrics.recordCallback(ctx, outcomeCorrelationFailed)
		return &auth.Ticket{Properties: props}, nil
	}

	if code == "" {
		if providerErr := query.Get("error"); providerErr != "" {
			logger.Warnw("LinkedIn returned an authorization error",
				"error", providerErr, "error_description", query.Get("error_description"))
		} else {
			logger.Errorw("LinkedIn callback is missing the authorization code")
		}
		h.fail(span, outcomeMissingCode, nil)
		h.metrics.recordCallback(ctx, outcomeMissingCode)
		return &auth.Ticket{Properties: props}, nil
	}

	redirectURI := rc.BaseURI() + h.config.CallbackPath

	start := time.Now()
	tokens, err := h.tokens.ExchangeCode(ctx, code, redirectURI, h.config.ClientID, h.config.ClientSecret)
	h.metrics.recordUpstream(ctx, operationTokenExchange, start, err)
	if err != nil {
		logger.Errorw("LinkedIn token exchange failed", "error", err)
		h.fail(span, outcomeTokenExchangeError, err)
		h.metrics.recordCallback(ctx, outcomeTokenExchangeError)
		return &auth.Ticket{Properties: props}, nil
	}

	start = time.Now()
	user, err := h.profiles.FetchProfile(ctx, tokens.AccessToken)
	h.metrics.recordUpstream(ctx, operationProfileFetch, start, err)
	if err != nil {
		logger.Errorw("LinkedIn profile fetch failed", "error", err)
		h.fail(span, outcomeProfileError, err)
		h.metrics.recordCallback(ctx, outcomeProfileError)
		return &auth.Ticket{Properties: props}, nil
	}

	profile, identity := MapIdentity(user, h.config.AuthenticationType)
	actx := &AuthenticatedContext{
		Request:     rc,
		User:        user,
		Profile:     profile,
		AccessToken: tokens.AccessToken,
		ExpiresIn:   tokens.ExpiresIn,
		Identity:    identity,
		Properties:  props,
	}
	if err := h.provider.Authenticated(ctx, actx); err != nil {
		h.fail(span, outcomeHookError, err)
		h.metrics.recordCallback(ctx, outcomeHookError)
		return nil, fmt.Errorf("authenticated hook failed: %w", err)
	}

	logger.Debugw("LinkedIn user authenticated", "identity", actx.Identity)
	h.metrics.recordCallback(ctx, outcomeAuthenticated)
	return &auth.Ticket{Identity: actx.Identity, Properties: actx.Properties}, nil
}

func (*Handler) fail(span trace.Span, outcome string, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, outcome)
}

// singleValue returns the value of key only if it occurs exactly once.
func singleValue(query url.Values, key string) string {
	values := query[key]
	if len(values) != 1 {
		return ""
	}
	return values[0]
}
