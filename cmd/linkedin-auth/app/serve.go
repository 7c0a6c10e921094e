// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/linkedin-auth/pkg/auth/linkedin"
	"github.com/stacklok/linkedin-auth/pkg/config"
	"github.com/stacklok/linkedin-auth/pkg/logger"
	"github.com/stacklok/linkedin-auth/pkg/networking"
	"github.com/stacklok/linkedin-auth/pkg/server"
	"github.com/stacklok/linkedin-auth/pkg/telemetry"
)

const telemetryShutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command for starting the demo server
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the LinkedIn sign-in server",
		Long: `Start the LinkedIn sign-in server.

The server answers the LinkedIn callback path, redirects /login to LinkedIn,
and exposes /healthz, /version and, when enabled, /metrics.`,
		RunE: runServe,
	}

	cmd.Flags().String("address", "", "Listen address, overrides server.address")
	if err := viper.BindPFlag("address", cmd.Flags().Lookup("address")); err != nil {
		logger.Errorf("Error binding address flag: %v", err)
	}

	return cmd
}

// runServe implements the serve command logic
func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, configStore(), osEnv())
	if err != nil {
		return err
	}
	if addr := viper.GetString("address"); addr != "" {
		cfg.Server.Address = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tel, err := telemetry.NewProvider(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetryShutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warnw("telemetry shutdown failed", "error", err)
		}
	}()

	handler, err := newLinkedInHandler(cfg, tel)
	if err != nil {
		return err
	}

	return server.Serve(ctx, server.Options{
		Address:           cfg.Server.Address,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		Handler:           handler,
		Metrics:           tel.PrometheusHandler(),
		Instrument:        tel.Middleware("linkedin-auth"),
	})
}

// newLinkedInHandler wires the handler's collaborators from the configuration.
func newLinkedInHandler(cfg *config.Config, tel *telemetry.Provider) (*linkedin.Handler, error) {
	lc := cfg.LinkedIn.WithDefaults()

	client, err := networking.NewHttpClientBuilder().
		WithTimeout(lc.BackchannelTimeout).
		WithCABundle(cfg.CACertificatePath).
		WithPrivateIPs(cfg.AllowPrivateIP).
		WithInsecureHTTP(cfg.AllowInsecureHTTP).
		WithTracing(true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	opts := []linkedin.Option{
		linkedin.WithHTTPClient(client),
		linkedin.WithProvider(server.NewProvider(time.Now)),
		linkedin.WithSignInManager(server.LogSignIn),
		linkedin.WithTracerProvider(tel.TracerProvider()),
		linkedin.WithMeterProvider(tel.MeterProvider()),
	}
	if cfg.State.HasKey() {
		codec, err := cfg.State.NewCodec(lc.AuthenticationType)
		if err != nil {
			return nil, fmt.Errorf("failed to create state codec: %w", err)
		}
		opts = append(opts, linkedin.WithStateCodec(codec))
	}

	handler, err := linkedin.NewHandler(lc, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LinkedIn handler: %w", err)
	}
	return handler, nil
}
