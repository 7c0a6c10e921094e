// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/linkedin-auth/pkg/auth/state"
	"github.com/stacklok/linkedin-auth/pkg/networking"
)

// Option configures a Handler.
type Option func(*Handler)

// WithStateCodec sets the state codec. Without it an ephemeral signing key is
// generated, which does not survive restarts or work across replicas.
func WithStateCodec(codec state.Codec) Option {
	return func(h *Handler) {
		h.stateCodec = codec
	}
}

// WithCorrelationGuard replaces the default cookie-based correlation guard.
func WithCorrelationGuard(guard CorrelationGuard) Option {
	return func(h *Handler) {
		h.correlation = guard
	}
}

// WithProvider sets the notification hooks.
func WithProvider(provider Provider) Option {
	return func(h *Handler) {
		h.provider = provider
	}
}

// WithSignInManager sets the collaborator that persists granted identities.
func WithSignInManager(manager SignInManager) Option {
	return func(h *Handler) {
		h.signIn = manager
	}
}

// WithHTTPClient sets the client used by the default token and profile clients.
func WithHTTPClient(client networking.HTTPClient) Option {
	return func(h *Handler) {
		h.httpClient = client
	}
}

// WithTokenExchanger replaces the default token client.
func WithTokenExchanger(exchanger TokenExchanger) Option {
	return func(h *Handler) {
		h.tokens = exchanger
	}
}

// WithProfileFetcher replaces the default profile client.
func WithProfileFetcher(fetcher ProfileFetcher) Option {
	return func(h *Handler) {
		h.profiles = fetcher
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Handler) {
		h.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(h *Handler) {
		h.meterProvider = mp
	}
}
