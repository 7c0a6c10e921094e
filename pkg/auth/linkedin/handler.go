// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/linkedin-auth/pkg/auth"
	"github.com/stacklok/linkedin-auth/pkg/auth/correlation"
	"github.com/stacklok/linkedin-auth/pkg/auth/state"
	"github.com/stacklok/linkedin-auth/pkg/logger"
	"github.com/stacklok/linkedin-auth/pkg/networking"
)

// Handler is the LinkedIn authentication handler. All fields are set by
// NewHandler and only read afterwards.
type Handler struct {
	config Config

	stateCodec  state.Codec
	correlation CorrelationGuard
	provider    Provider
	signIn      SignInManager

	httpClient networking.HTTPClient
	tokens     TokenExchanger
	profiles   ProfileFetcher

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	tracer         trace.Tracer
	metrics        *instruments
}

// NewHandler validates cfg and builds a Handler. Collaborators not supplied
// through opts get defaults.
func NewHandler(cfg Config, opts ...Option) (*Handler, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid LinkedIn configuration: %w", err)
	}

	h := &Handler{config: cfg}
	for _, opt := range opts {
		opt(h)
	}

	if h.stateCodec == nil {
		codec, err := state.NewSignedCodec(state.GenerateKey(), state.WithPurpose(cfg.AuthenticationType))
		if err != nil {
			return nil, fmt.Errorf("failed to create default state codec: %w", err)
		}
		logger.Warnw("no state codec configured, using an ephemeral signing key",
			"authentication_type", cfg.AuthenticationType)
		h.stateCodec = codec
	}
	if h.correlation == nil {
		cookiePath := cfg.PathBase
		if cookiePath == "" {
			cookiePath = "/"
		}
		h.correlation = correlation.NewGuard(cfg.AuthenticationType, correlation.WithPath(cookiePath))
	}
	if h.provider == nil {
		h.provider = ProviderFuncs{}
	}
	if cfg.SignInAsAuthenticationType != "" && h.signIn == nil {
		return nil, errors.New("a sign-in manager is required when sign_in_as is set")
	}

	if h.httpClient == nil && (h.tokens == nil || h.profiles == nil) {
		client, err := networking.NewHttpClientBuilder().
			WithTimeout(cfg.BackchannelTimeout).
			WithTracing(true).
			Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		h.httpClient = client
	}
	if h.tokens == nil {
		h.tokens = NewTokenClient(cfg.TokenEndpoint, h.httpClient)
	}
	if h.profiles == nil {
		h.profiles = NewProfileClient(cfg.ProfileEndpoint, h.httpClient)
	}

	if h.tracerProvider == nil {
		h.tracerProvider = otel.GetTracerProvider()
	}
	if h.meterProvider == nil {
		h.meterProvider = otel.GetMeterProvider()
	}
	h.tracer = h.tracerProvider.Tracer(instrumentationName)
	h.metrics = newInstruments(h.meterProvider, cfg.AuthenticationType)

	return h, nil
}

// Config returns a copy of the effective configuration.
func (h *Handler) Config() Config {
	return h.config.WithDefaults()
}

// AuthenticationType returns the label this handler issues identities under.
func (h *Handler) AuthenticationType() string {
	return h.config.AuthenticationType
}

// Middleware mounts the handler in front of next. Requests to the callback
// path are answered here; everything else passes through, and a 401 from
// next turns into a LinkedIn redirect when RequestChallenge was called.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := NewRequestContext(w, r, h.config.PathBase)

		handled, err := h.InvokeCallback(rc)
		if err != nil {
			logger.Errorw("LinkedIn callback failed", "path", r.URL.Path, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if handled {
			return
		}

		slot := &challengeSlot{}
		ctx := context.WithValue(r.Context(), challengeKey{authenticationType: h.config.AuthenticationType}, slot)
		cw := &challengeWriter{ResponseWriter: w, handler: h, rc: rc, slot: slot}
		next.ServeHTTP(cw, r.WithContext(ctx))
	})
}

type challengeKey struct {
	authenticationType string
}

type challengeSlot struct {
	props *auth.Properties
}

// RequestChallenge asks the enclosing Middleware for authenticationType to
// redirect to LinkedIn if this request ends with a 401. props may be nil.
// It returns false when no such middleware is in the chain.
func RequestChallenge(r *http.Request, authenticationType string, props *auth.Properties) bool {
	slot, ok := r.Context().Value(challengeKey{authenticationType: authenticationType}).(*challengeSlot)
	if !ok {
		return false
	}
	if props == nil {
		props = auth.NewProperties("")
	}
	slot.props = props
	return true
}

// challengeWriter intercepts the status code written by the downstream handler.
type challengeWriter struct {
	http.ResponseWriter
	handler     *Handler
	rc          *RequestContext
	slot        *challengeSlot
	wroteHeader bool
	suppressed  bool
}

func (cw *challengeWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	if code != http.StatusUnauthorized || cw.slot.props == nil {
		cw.ResponseWriter.WriteHeader(code)
		return
	}

	cw.suppressed = true
	cw.Header().Del("Content-Length")
	if err := cw.handler.ApplyChallenge(cw.rc, code, cw.slot.props); err != nil {
		logger.Errorw("failed to issue LinkedIn challenge", "error", err)
		cw.ResponseWriter.WriteHeader(http.StatusInternalServerError)
	}
}

func (cw *challengeWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.suppressed {
		return len(b), nil
	}
	return cw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *challengeWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
