// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package server hosts the LinkedIn handler behind a small chi application
// with login, health, version and metrics routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stacklok/linkedin-auth/pkg/auth/linkedin"
	"github.com/stacklok/linkedin-auth/pkg/logger"
)

const (
	middlewareTimeout        = 60 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 15 * time.Second
)

// Options configures the application server.
type Options struct {
	// Address is the TCP listen address.
	Address string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// Handler is the LinkedIn authentication handler.
	Handler *linkedin.Handler

	// Metrics is served at /metrics when set.
	Metrics http.Handler

	// Instrument wraps the router for inbound tracing when set.
	Instrument func(http.Handler) http.Handler
}

// NewRouter builds the application routes. The LinkedIn middleware runs in
// front of every route so that it can answer its callback path and turn a
// 401 from /login into a redirect.
func NewRouter(h *linkedin.Handler, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(middlewareTimeout),
		h.Middleware,
	)

	routes := &appRoutes{handler: h}
	r.Get("/", routes.home)
	r.Get("/login", routes.login)
	r.Get("/healthz", healthz)
	r.Get("/version", version)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}

// Serve listens on opts.Address until ctx is cancelled, then drains in-flight
// requests for up to opts.ShutdownTimeout.
// It is assumed that the caller sets up appropriate signal handling.
func Serve(ctx context.Context, opts Options) error {
	if opts.Handler == nil {
		return errors.New("a LinkedIn handler is required")
	}
	listener, err := net.Listen("tcp", opts.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.Address, err)
	}
	return serve(ctx, listener, opts)
}

func serve(ctx context.Context, listener net.Listener, opts Options) error {
	readHeaderTimeout := opts.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = defaultReadHeaderTimeout
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	handler := NewRouter(opts.Handler, opts.Metrics)
	if opts.Instrument != nil {
		handler = opts.Instrument(handler)
	}

	// Requests keep ctx's values but not its cancellation, so that Shutdown can drain them.
	baseCtx := context.WithoutCancel(ctx)
	srv := &http.Server{
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	logger.Infow("starting HTTP server", "address", listener.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped with error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(baseCtx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
