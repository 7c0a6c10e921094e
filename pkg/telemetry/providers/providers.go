// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package providers assembles tracer and meter providers from the OTLP and
// Prometheus backends.
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/stacklok/linkedin-auth/pkg/logger"
	"github.com/stacklok/linkedin-auth/pkg/telemetry/providers/otlp"
	"github.com/stacklok/linkedin-auth/pkg/telemetry/providers/prometheus"
)

// Config is the resolved provider configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string

	OTLPEndpoint   string            // host:port of the collector
	Headers        map[string]string // extra OTLP request headers
	Insecure       bool              // plain HTTP to the collector
	TracingEnabled bool
	MetricsEnabled bool
	SamplingRate   float64

	EnablePrometheusMetricsPath bool
	IncludeRuntimeMetrics       bool
}

// ProviderOption configures a CompositeProvider.
type ProviderOption func(*Config) error

// WithServiceName sets the service.name resource attribute.
func WithServiceName(serviceName string) ProviderOption {
	return func(config *Config) error {
		if serviceName == "" {
			return errors.New("service name cannot be empty")
		}
		config.ServiceName = serviceName
		return nil
	}
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(serviceVersion string) ProviderOption {
	return func(config *Config) error {
		if serviceVersion == "" {
			return errors.New("service version cannot be empty")
		}
		config.ServiceVersion = serviceVersion
		return nil
	}
}

// WithOTLPEndpoint sets the collector endpoint.
func WithOTLPEndpoint(endpoint string) ProviderOption {
	return func(config *Config) error {
		config.OTLPEndpoint = endpoint
		return nil
	}
}

// WithHeaders sets headers for OTLP requests.
func WithHeaders(headers map[string]string) ProviderOption {
	return func(config *Config) error {
		config.Headers = headers
		return nil
	}
}

// WithInsecure disables TLS to the collector.
func WithInsecure(insecure bool) ProviderOption {
	return func(config *Config) error {
		config.Insecure = insecure
		return nil
	}
}

// WithTracingEnabled toggles OTLP tracing.
func WithTracingEnabled(enabled bool) ProviderOption {
	return func(config *Config) error {
		config.TracingEnabled = enabled
		return nil
	}
}

// WithMetricsEnabled toggles OTLP metrics.
func WithMetricsEnabled(enabled bool) ProviderOption {
	return func(config *Config) error {
		config.MetricsEnabled = enabled
		return nil
	}
}

// WithSamplingRate sets the trace sampling ratio.
func WithSamplingRate(rate float64) ProviderOption {
	return func(config *Config) error {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("sampling rate must be between 0 and 1, got %v", rate)
		}
		config.SamplingRate = rate
		return nil
	}
}

// WithEnablePrometheusMetricsPath enables the Prometheus reader.
func WithEnablePrometheusMetricsPath(enabled bool) ProviderOption {
	return func(config *Config) error {
		config.EnablePrometheusMetricsPath = enabled
		return nil
	}
}

// WithRuntimeMetrics adds Go runtime collectors to the Prometheus registry.
func WithRuntimeMetrics(enabled bool) ProviderOption {
	return func(config *Config) error {
		config.IncludeRuntimeMetrics = enabled
		return nil
	}
}

// CompositeProvider holds the providers built for one process.
type CompositeProvider struct {
	tracerProvider    trace.TracerProvider
	meterProvider     metric.MeterProvider
	prometheusHandler http.Handler
	shutdownFuncs     []func(context.Context) error
}

// NewCompositeProvider builds providers from options. Disabled backends fall
// back to no-op providers.
func NewCompositeProvider(ctx context.Context, options ...ProviderOption) (*CompositeProvider, error) {
	config := Config{}
	for _, option := range options {
		if err := option(&config); err != nil {
			return nil, err
		}
	}

	tracing := config.TracingEnabled && config.OTLPEndpoint != ""
	otlpMetrics := config.MetricsEnabled && config.OTLPEndpoint != ""
	if !tracing && !otlpMetrics && !config.EnablePrometheusMetricsPath {
		logger.Infof("No telemetry configured, using no-op providers")
		return &CompositeProvider{
			tracerProvider: tracenoop.NewTracerProvider(),
			meterProvider:  noop.NewMeterProvider(),
		}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource with service name '%s' and version '%s': %w",
			config.ServiceName, config.ServiceVersion, err)
	}

	composite := &CompositeProvider{}
	otlpConfig := otlp.Config{
		Endpoint:     config.OTLPEndpoint,
		Headers:      config.Headers,
		Insecure:     config.Insecure,
		SamplingRate: config.SamplingRate,
	}

	if err := composite.buildMeterProvider(ctx, config, otlpConfig, otlpMetrics, res); err != nil {
		return nil, err
	}

	if tracing {
		tp, shutdown, err := otlp.NewTracerProvider(ctx, otlpConfig, res)
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer provider (endpoint: %s): %w", config.OTLPEndpoint, err)
		}
		composite.tracerProvider = tp
		composite.shutdownFuncs = append(composite.shutdownFuncs, shutdown)
	} else {
		composite.tracerProvider = tracenoop.NewTracerProvider()
	}

	logger.Infof("Telemetry providers created successfully")
	return composite, nil
}

func (p *CompositeProvider) buildMeterProvider(
	ctx context.Context,
	config Config,
	otlpConfig otlp.Config,
	otlpMetrics bool,
	res *resource.Resource,
) error {
	var readers []sdkmetric.Option

	if config.EnablePrometheusMetricsPath {
		reader, handler, err := prometheus.NewReader(prometheus.Config{
			EnableMetricsPath:     true,
			IncludeRuntimeMetrics: config.IncludeRuntimeMetrics,
		})
		if err != nil {
			return err
		}
		readers = append(readers, sdkmetric.WithReader(reader))
		p.prometheusHandler = handler
	}

	if otlpMetrics {
		reader, err := otlp.NewMetricReader(ctx, otlpConfig)
		if err != nil {
			return fmt.Errorf("failed to create meter provider (endpoint: %s): %w", config.OTLPEndpoint, err)
		}
		readers = append(readers, sdkmetric.WithReader(reader))
	}

	if len(readers) == 0 {
		p.meterProvider = noop.NewMeterProvider()
		return nil
	}

	mp := sdkmetric.NewMeterProvider(append(readers, sdkmetric.WithResource(res))...)
	p.meterProvider = mp
	p.shutdownFuncs = append(p.shutdownFuncs, mp.Shutdown)
	return nil
}

// TracerProvider returns the tracer provider.
func (p *CompositeProvider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// MeterProvider returns the meter provider.
func (p *CompositeProvider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// PrometheusHandler returns the scrape handler, or nil when Prometheus is disabled.
func (p *CompositeProvider) PrometheusHandler() http.Handler {
	return p.prometheusHandler
}

// Shutdown flushes and stops every backend, waiting at most five seconds.
func (p *CompositeProvider) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	for i, shutdown := range p.shutdownFuncs {
		if err := shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("provider %d shutdown failed: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
