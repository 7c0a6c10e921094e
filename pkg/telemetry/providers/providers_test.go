// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestNewCompositeProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		options        []ProviderOption
		wantErr        string
		wantSDKTracer  bool
		wantSDKMeter   bool
		wantPrometheus bool
	}{
		{
			name:    "nothing enabled",
			options: []ProviderOption{WithServiceName("linkedin-auth"), WithServiceVersion("v1")},
		},
		{
			name: "endpoint with everything disabled",
			options: []ProviderOption{
				WithServiceName("linkedin-auth"),
				WithServiceVersion("v1"),
				WithOTLPEndpoint("localhost:4318"),
			},
		},
		{
			name: "prometheus only",
			options: []ProviderOption{
				WithServiceName("linkedin-auth"),
				WithServiceVersion("v1"),
				WithEnablePrometheusMetricsPath(true),
			},
			wantSDKMeter:   true,
			wantPrometheus: true,
		},
		{
			name: "otlp tracing",
			options: []ProviderOption{
				WithServiceName("linkedin-auth"),
				WithServiceVersion("v1"),
				WithOTLPEndpoint("localhost:4318"),
				WithInsecure(true),
				WithTracingEnabled(true),
				WithSamplingRate(1),
			},
			wantSDKTracer: true,
		},
		{
			name:    "empty service name",
			options: []ProviderOption{WithServiceName("")},
			wantErr: "service name cannot be empty",
		},
		{
			name:    "sampling rate out of range",
			options: []ProviderOption{WithSamplingRate(1.5)},
			wantErr: "sampling rate must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			p, err := NewCompositeProvider(ctx, tt.options...)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = p.Shutdown(ctx) })

			if tt.wantSDKTracer {
				assert.IsType(t, &sdktrace.TracerProvider{}, p.TracerProvider())
			} else {
				assert.IsType(t, tracenoop.TracerProvider{}, p.TracerProvider())
			}
			if tt.wantSDKMeter {
				assert.IsType(t, &sdkmetric.MeterProvider{}, p.MeterProvider())
			} else {
				assert.IsType(t, noop.MeterProvider{}, p.MeterProvider())
			}
			if tt.wantPrometheus {
				require.NotNil(t, p.PrometheusHandler())
				rec := httptest.NewRecorder()
				p.PrometheusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				assert.Nil(t, p.PrometheusHandler())
			}
		})
	}
}
