// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package correlation implements the CSRF correlation check for redirect-based
// login flows.
//
// On the challenge leg a random value is written both into the return
// properties (which travel inside the signed state parameter) and into a
// short-lived HttpOnly cookie. On the callback leg the two must match. The
// cookie is deleted on every validation attempt so a value is only ever
// accepted once.
package correlation

import (
	"crypto/rand"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/stacklok/linkedin-auth/pkg/auth"
	"github.com/stacklok/linkedin-auth/pkg/logger"
	"github.com/stacklok/linkedin-auth/pkg/networking"
)

// DefaultMaxAge bounds how long a browser may take to come back from the provider.
const DefaultMaxAge = 15 * time.Minute

const cookiePrefix = ".Correlation."

// CookieName returns the correlation cookie name for an authentication type.
// Characters not allowed in a cookie name are replaced with '_'.
func CookieName(authenticationType string) string {
	var b strings.Builder
	b.WriteString(cookiePrefix)
	for _, c := range authenticationType {
		if isTokenChar(c) {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isTokenChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.ContainsRune("!#$%&'*+-.^_`|~", c)
}

// Guard mints and checks correlation values for one authentication type.
// A Guard has no mutable state and is safe for concurrent use.
type Guard struct {
	cookieName string
	path       string
	maxAge     time.Duration
	now        func() time.Time
}

// Option configures a Guard.
type Option func(*Guard)

// WithPath sets the cookie path. Defaults to "/".
func WithPath(path string) Option {
	return func(g *Guard) {
		if path != "" {
			g.path = path
		}
	}
}

// WithMaxAge sets the cookie lifetime.
func WithMaxAge(maxAge time.Duration) Option {
	return func(g *Guard) {
		if maxAge > 0 {
			g.maxAge = maxAge
		}
	}
}

// WithClock overrides the time source used for cookie expiry.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// NewGuard creates a Guard whose cookie name derives from authenticationType.
func NewGuard(authenticationType string, opts ...Option) *Guard {
	g := &Guard{
		cookieName: CookieName(authenticationType),
		path:       "/",
		maxAge:     DefaultMaxAge,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CookieName returns the name of the cookie this guard manages.
func (g *Guard) CookieName() string {
	return g.cookieName
}

// Generate stores a fresh correlation value in props and sets the matching cookie on w.
func (g *Guard) Generate(w http.ResponseWriter, r *http.Request, props *auth.Properties) {
	value := rand.Text()
	props.Set(auth.CorrelationKey, value)

	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    value,
		Path:     g.path,
		Expires:  g.now().Add(g.maxAge),
		MaxAge:   int(g.maxAge / time.Second),
		HttpOnly: true,
		Secure:   networking.RequestScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

// Validate reports whether the correlation value in props matches the cookie on r.
// The cookie is expired on w regardless of outcome, and the value is removed
// from props when present. Failures are logged at warning level.
func (g *Guard) Validate(w http.ResponseWriter, r *http.Request, props *auth.Properties) bool {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		logger.Warnw("correlation cookie not found", "cookie", g.cookieName)
		return false
	}

	g.expire(w, r)

	expected, ok := props.Get(auth.CorrelationKey)
	if !ok || expected == "" {
		logger.Warnw("correlation value not found in state", "cookie", g.cookieName)
		return false
	}
	props.Delete(auth.CorrelationKey)

	if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(expected)) != 1 {
		logger.Warnw("correlation cookie does not match state", "cookie", g.cookieName)
		return false
	}
	return true
}

func (g *Guard) expire(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     g.path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   networking.RequestScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
	})
}
