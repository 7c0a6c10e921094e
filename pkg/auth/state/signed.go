// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stacklok/linkedin-auth/pkg/auth"
)

const signedIssuer = "linkedin-auth"

// SignedCodec encodes properties as an HS256-signed JWT.
// The properties are readable by anyone holding the state; only their
// integrity and lifetime are protected.
type SignedCodec struct {
	key  []byte
	opts *options
}

type signedClaims struct {
	jwt.RegisteredClaims
	State payload `json:"st"`
}

var _ Codec = (*SignedCodec)(nil)

// NewSignedCodec creates a SignedCodec. key must be at least MinKeyLength bytes.
func NewSignedCodec(key []byte, opts ...Option) (*SignedCodec, error) {
	if len(key) < MinKeyLength {
		return nil, ErrKeyTooShort
	}
	return &SignedCodec{
		key:  slices.Clone(key),
		opts: newOptions(opts),
	}, nil
}

// Protect implements Codec.
func (c *SignedCodec) Protect(props *auth.Properties) (string, error) {
	if props == nil {
		return "", fmt.Errorf("properties are required")
	}

	now := c.opts.now()
	claims := signedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    signedIssuer,
			Audience:  jwt.ClaimStrings{c.opts.purpose},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.opts.ttl)),
		},
		State: toPayload(props),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return signed, nil
}

// Unprotect implements Codec.
func (c *SignedCodec) Unprotect(protected string) (*auth.Properties, error) {
	if protected == "" {
		return nil, ErrEmptyState
	}

	claims := &signedClaims{}
	_, err := jwt.ParseWithClaims(protected, claims,
		func(_ *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signedIssuer),
		jwt.WithAudience(c.opts.purpose),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.opts.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidState, ErrExpired)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	return claims.State.properties(), nil
}
