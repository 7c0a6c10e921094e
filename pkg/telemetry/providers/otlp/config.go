// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package otlp builds OpenTelemetry Protocol exporters over HTTP.
package otlp

// Config holds the OTLP collector settings shared by traces and metrics.
type Config struct {
	// Endpoint is host:port of the collector, without scheme.
	Endpoint string

	// Headers are sent with every export request.
	Headers map[string]string

	// Insecure sends exports over plain HTTP.
	Insecure bool

	// SamplingRate is the trace sampling ratio between 0 and 1.
	SamplingRate float64
}
