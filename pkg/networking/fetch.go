// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package networking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	// DefaultMaxResponseSize is the default maximum response body size (1MB).
	DefaultMaxResponseSize = 1024 * 1024

	// DefaultErrorPreviewSize is the maximum size of error body preview in HTTPError.
	DefaultErrorPreviewSize = 1024

	// ContentTypeJSON is the JSON content type.
	ContentTypeJSON = "application/json"
)

// ErrResponseTooLarge is returned when a response body exceeds the configured limit.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// FetchResult contains the result of a successful fetch.
type FetchResult struct {
	// Body is the raw response body.
	Body []byte

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Headers are the response headers.
	Headers http.Header
}

// FetchOption configures a fetch request.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	headers         http.Header
	maxResponseSize int64
	displayURL      string
}

func newFetchOptions() *fetchOptions {
	return &fetchOptions{
		headers:         make(http.Header),
		maxResponseSize: DefaultMaxResponseSize,
	}
}

// WithHeader adds a single header to the request.
func WithHeader(key, value string) FetchOption {
	return func(opts *fetchOptions) {
		opts.headers.Set(key, value)
	}
}

// WithMaxResponseSize sets the maximum response body size.
// If not set, DefaultMaxResponseSize (1MB) is used.
func WithMaxResponseSize(size int64) FetchOption {
	return func(opts *fetchOptions) {
		opts.maxResponseSize = size
	}
}

// WithDisplayURL sets the URL reported in errors. Use it when the request URL
// carries credentials in its query string.
func WithDisplayURL(u string) FetchOption {
	return func(opts *fetchOptions) {
		opts.displayURL = u
	}
}

// Fetch performs a GET request and returns the body of any 2xx response.
// Non-2xx responses yield an *HTTPError. The request is bound to ctx so a
// cancelled caller aborts the exchange in flight.
func Fetch(ctx context.Context, client HTTPClient, requestURL string, opts ...FetchOption) (*FetchResult, error) {
	options := newFetchOptions()
	for _, opt := range opts {
		opt(options)
	}
	displayURL := options.displayURL
	if displayURL == "" {
		displayURL = requestURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range options.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		// The transport error embeds the full URL; report the display URL instead.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request to %s cancelled: %w", displayURL, ctxErr)
		}
		return nil, fmt.Errorf("request to %s failed: %w", displayURL, unwrapURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	// Read one byte past the limit so oversized bodies are detected rather than truncated.
	body, err := io.ReadAll(io.LimitReader(resp.Body, options.maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > options.maxResponseSize {
		return nil, fmt.Errorf("%s: %w", displayURL, ErrResponseTooLarge)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyPreview := string(body)
		if len(bodyPreview) > DefaultErrorPreviewSize {
			bodyPreview = bodyPreview[:DefaultErrorPreviewSize]
		}
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       bodyPreview,
			URL:        displayURL,
		}
	}

	return &FetchResult{
		Body:       body,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
	}, nil
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
