// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/linkedin-auth/pkg/logger"
	"github.com/stacklok/linkedin-auth/pkg/telemetry/providers"
	"github.com/stacklok/linkedin-auth/pkg/versions"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// Endpoint is the OTLP collector host:port.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`

	// ServiceName is the service.name resource attribute.
	ServiceName string `yaml:"service_name,omitempty" json:"service_name,omitempty"`

	// ServiceVersion defaults to the build version.
	ServiceVersion string `yaml:"service_version,omitempty" json:"service_version,omitempty"`

	// TracingEnabled exports spans when an endpoint is configured.
	TracingEnabled bool `yaml:"tracing_enabled" json:"tracing_enabled"`

	// MetricsEnabled exports OTLP metrics when an endpoint is configured.
	// It is independent of the Prometheus endpoint.
	MetricsEnabled bool `yaml:"metrics_enabled" json:"metrics_enabled"`

	// SamplingRate is the trace sampling ratio (0.0-1.0).
	SamplingRate float64 `yaml:"sampling_rate" json:"sampling_rate"`

	// Headers are sent with OTLP requests, typically for collector auth.
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	// Insecure uses plain HTTP to the collector.
	Insecure bool `yaml:"insecure,omitempty" json:"insecure,omitempty"`

	// EnablePrometheusMetricsPath serves /metrics on the main listener.
	EnablePrometheusMetricsPath bool `yaml:"prometheus" json:"prometheus"`

	// IncludeRuntimeMetrics adds Go runtime and process metrics to /metrics.
	IncludeRuntimeMetrics bool `yaml:"runtime_metrics,omitempty" json:"runtime_metrics,omitempty"`
}

// DefaultConfig returns a default telemetry configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:                 "linkedin-auth",
		ServiceVersion:              versions.GetVersionInfo().Version,
		TracingEnabled:              true,
		MetricsEnabled:              true,
		SamplingRate:                0.05,
		Headers:                     make(map[string]string),
		EnablePrometheusMetricsPath: true,
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint != "" && !c.TracingEnabled && !c.MetricsEnabled {
		errs = append(errs, errors.New("OTLP endpoint is configured but both tracing and metrics are disabled; "+
			"either enable tracing or metrics, or remove the endpoint"))
	}
	if strings.Contains(c.Endpoint, "://") {
		errs = append(errs, fmt.Errorf("OTLP endpoint must be host:port without a scheme: %q", c.Endpoint))
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		errs = append(errs, fmt.Errorf("sampling_rate must be between 0 and 1, got %v", c.SamplingRate))
	}
	return errors.Join(errs...)
}

// Provider encapsulates OpenTelemetry providers and configuration.
type Provider struct {
	config            Config
	tracerProvider    trace.TracerProvider
	meterProvider     metric.MeterProvider
	prometheusHandler http.Handler
	shutdown          func(context.Context) error
}

// NewProvider builds the providers and installs them as the OpenTelemetry globals.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.ServiceVersion == "" {
		config.ServiceVersion = versions.GetVersionInfo().Version
	}

	composite, err := providers.NewCompositeProvider(ctx,
		providers.WithServiceName(config.ServiceName),
		providers.WithServiceVersion(config.ServiceVersion),
		providers.WithOTLPEndpoint(config.Endpoint),
		providers.WithHeaders(config.Headers),
		providers.WithInsecure(config.Insecure),
		providers.WithTracingEnabled(config.TracingEnabled),
		providers.WithMetricsEnabled(config.MetricsEnabled),
		providers.WithSamplingRate(config.SamplingRate),
		providers.WithEnablePrometheusMetricsPath(config.EnablePrometheusMetricsPath),
		providers.WithRuntimeMetrics(config.IncludeRuntimeMetrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry providers: %w", err)
	}

	otel.SetLogger(logger.NewLogr())
	otel.SetTracerProvider(composite.TracerProvider())
	otel.SetMeterProvider(composite.MeterProvider())
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{
		config:            config,
		tracerProvider:    composite.TracerProvider(),
		meterProvider:     composite.MeterProvider(),
		prometheusHandler: composite.PrometheusHandler(),
		shutdown:          composite.Shutdown,
	}, nil
}

// Shutdown gracefully shuts down the telemetry provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.shutdown != nil {
		return p.shutdown(ctx)
	}
	return nil
}

// TracerProvider returns the configured tracer provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// MeterProvider returns the configured meter provider.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// PrometheusHandler returns the Prometheus metrics handler if configured.
func (p *Provider) PrometheusHandler() http.Handler {
	return p.prometheusHandler
}
