// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/stacklok/linkedin-auth/pkg/auth/linkedin"

// Callback outcomes recorded on the callbacks counter.
const (
	outcomeAuthenticated      = "authenticated"
	outcomeInvalidState       = "invalid_state"
	outcomeCorrelationFailed  = "correlation_failed"
	outcomeMissingCode        = "missing_code"
	outcomeTokenExchangeError = "token_exchange_error"
	outcomeProfileError       = "profile_error"
	outcomeHookError          = "hook_error"
)

// Upstream operations recorded on the duration histogram.
const (
	operationTokenExchange = "token_exchange"
	operationProfileFetch  = "profile_fetch"
)

type instruments struct {
	challenges       metric.Int64Counter
	callbacks        metric.Int64Counter
	upstreamDuration metric.Float64Histogram
	authType         attribute.KeyValue
}

func newInstruments(meterProvider metric.MeterProvider, authenticationType string) *instruments {
	meter := meterProvider.Meter(instrumentationName)

	// Names are constant and valid, so creation errors are ignored.
	challenges, _ := meter.Int64Counter(
		"linkedin_auth_challenges", // The exporter adds the _total suffix automatically
		metric.WithDescription("Number of authorization redirects issued"),
	)
	callbacks, _ := meter.Int64Counter(
		"linkedin_auth_callbacks",
		metric.WithDescription("Number of callback requests by outcome"),
	)
	upstreamDuration, _ := meter.Float64Histogram(
		"linkedin_auth_upstream_duration",
		metric.WithDescription("Duration of calls to LinkedIn in seconds"),
		metric.WithUnit("s"),
	)

	return &instruments{
		challenges:       challenges,
		callbacks:        callbacks,
		upstreamDuration: upstreamDuration,
		authType:         attribute.String("authentication_type", authenticationType),
	}
}

func (m *instruments) recordChallenge(ctx context.Context) {
	m.challenges.Add(ctx, 1, metric.WithAttributes(m.authType))
}

func (m *instruments) recordCallback(ctx context.Context, outcome string) {
	m.callbacks.Add(ctx, 1, metric.WithAttributes(m.authType, attribute.String("outcome", outcome)))
}

func (m *instruments) recordUpstream(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.upstreamDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		m.authType,
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}
