// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"net/http"
	"strings"

	"github.com/stacklok/linkedin-auth/pkg/networking"
)

// RequestContext is the per-request view the handler operates on: where the
// request came in, where the application is mounted, and the response being
// written. It is created once per request and never shared.
type RequestContext struct {
	w        http.ResponseWriter
	r        *http.Request
	scheme   string
	pathBase string
	path     string
}

// NewRequestContext wraps a request. pathBase is the prefix the application is
// mounted under ("" for the root); it is stripped from the path used for
// callback matching.
func NewRequestContext(w http.ResponseWriter, r *http.Request, pathBase string) *RequestContext {
	pathBase = strings.TrimSuffix(pathBase, "/")

	path := r.URL.Path
	if pathBase != "" {
		if path == pathBase {
			path = "/"
		} else if rest, ok := strings.CutPrefix(path, pathBase+"/"); ok {
			path = "/" + rest
		}
	}

	return &RequestContext{
		w:        w,
		r:        r,
		scheme:   networking.RequestScheme(r),
		pathBase: pathBase,
		path:     path,
	}
}

// Context returns the request's context. It is cancelled when the client goes away.
func (rc *RequestContext) Context() context.Context {
	return rc.r.Context()
}

// Request returns the inbound request.
func (rc *RequestContext) Request() *http.Request {
	return rc.r
}

// ResponseWriter returns the response being written.
func (rc *RequestContext) ResponseWriter() http.ResponseWriter {
	return rc.w
}

// Scheme returns "http" or "https".
func (rc *RequestContext) Scheme() string {
	return rc.scheme
}

// Host returns the Host header value.
func (rc *RequestContext) Host() string {
	return rc.r.Host
}

// PathBase returns the mount prefix without a trailing slash.
func (rc *RequestContext) PathBase() string {
	return rc.pathBase
}

// Path returns the request path relative to PathBase.
func (rc *RequestContext) Path() string {
	return rc.path
}

// QueryString returns the raw query including the leading '?', or "".
func (rc *RequestContext) QueryString() string {
	if rc.r.URL.RawQuery == "" {
		return ""
	}
	return "?" + rc.r.URL.RawQuery
}

// BaseURI is scheme://host followed by PathBase.
func (rc *RequestContext) BaseURI() string {
	return rc.scheme + "://" + rc.r.Host + rc.pathBase
}

// CurrentURI is the absolute URI of this request.
func (rc *RequestContext) CurrentURI() string {
	return rc.BaseURI() + rc.path + rc.QueryString()
}

// Redirect sends a 302 to location.
func (rc *RequestContext) Redirect(location string) {
	http.Redirect(rc.w, rc.r, location, http.StatusFound)
}

// SetStatusCode writes the response status.
func (rc *RequestContext) SetStatusCode(code int) {
	rc.w.WriteHeader(code)
}
