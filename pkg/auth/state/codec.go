// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package state encodes return properties into the opaque, tamper-evident
// string carried through the provider in the OAuth2 state parameter.
//
// Two codecs are provided. SignedCodec produces an HS256 JWT and is the
// default. EncryptedCodec produces a compact JWE for deployments that do not
// want the redirect target visible to the browser or the provider. Both
// embed an expiry and reject anything tampered, expired or minted for a
// different purpose.
package state

import (
	"crypto/rand"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/stacklok/linkedin-auth/pkg/auth"
)

// DefaultTTL is how long an issued state remains acceptable.
const DefaultTTL = 15 * time.Minute

// MinKeyLength is the minimum secret length accepted by the codecs.
const MinKeyLength = 32

var (
	// ErrInvalidState is returned when a state value cannot be authenticated or decoded.
	ErrInvalidState = errors.New("invalid state")

	// ErrExpired is returned when a state value is past its expiry. It wraps ErrInvalidState.
	ErrExpired = errors.New("state expired")

	// ErrEmptyState is returned when no state value was supplied.
	ErrEmptyState = errors.New("state is empty")

	// ErrKeyTooShort is returned by constructors given a short secret.
	ErrKeyTooShort = fmt.Errorf("state key must be at least %d bytes", MinKeyLength)
)

// Codec protects and unprotects return properties.
// Unprotect returns a non-nil error for anything it cannot fully trust.
type Codec interface {
	Protect(props *auth.Properties) (string, error)
	Unprotect(protected string) (*auth.Properties, error)
}

// payload is the serialized form shared by both codecs.
type payload struct {
	RedirectURI string            `json:"redirect_uri,omitempty"`
	Items       map[string]string `json:"items,omitempty"`
}

func toPayload(props *auth.Properties) payload {
	return payload{
		RedirectURI: props.RedirectURI,
		Items:       maps.Clone(props.Items),
	}
}

func (p payload) properties() *auth.Properties {
	props := auth.NewProperties(p.RedirectURI)
	maps.Copy(props.Items, p.Items)
	return props
}

// options are shared by both codecs.
type options struct {
	ttl     time.Duration
	purpose string
	now     func() time.Time
}

// Option configures a codec.
type Option func(*options)

// WithTTL sets the state lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithPurpose binds issued states to a purpose string, typically the
// authentication type. A state minted for one purpose is rejected by a codec
// configured with another.
func WithPurpose(purpose string) Option {
	return func(o *options) {
		o.purpose = purpose
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		ttl:     DefaultTTL,
		purpose: "state",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GenerateKey returns a random key suitable for either codec.
func GenerateKey() []byte {
	key := make([]byte, MinKeyLength)
	// crypto/rand.Read never returns an error
	_, _ = rand.Read(key)
	return key
}
