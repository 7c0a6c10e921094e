// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package telemetry wires OpenTelemetry for the service: OTLP traces and
// metrics, a Prometheus scrape endpoint and HTTP server instrumentation.
package telemetry
