// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/go-jose/go-jose/v4"

	"github.com/stacklok/linkedin-auth/pkg/auth"
)

// EncryptedCodec encodes properties as a compact JWE using direct key
// agreement and AES-256-GCM. GCM authenticates the ciphertext, so tampering
// is detected on decrypt.
type EncryptedCodec struct {
	key       []byte
	encrypter jose.Encrypter
	opts      *options
}

type encryptedEnvelope struct {
	Purpose   string  `json:"aud"`
	IssuedAt  int64   `json:"iat"`
	ExpiresAt int64   `json:"exp"`
	State     payload `json:"st"`
}

var _ Codec = (*EncryptedCodec)(nil)

// NewEncryptedCodec creates an EncryptedCodec. Only the first 32 bytes of key
// are used as the content encryption key.
func NewEncryptedCodec(key []byte, opts ...Option) (*EncryptedCodec, error) {
	if len(key) < MinKeyLength {
		return nil, ErrKeyTooShort
	}
	cek := slices.Clone(key[:MinKeyLength])

	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: cek},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypter: %w", err)
	}

	return &EncryptedCodec{
		key:       cek,
		encrypter: encrypter,
		opts:      newOptions(opts),
	}, nil
}

// Protect implements Codec.
func (c *EncryptedCodec) Protect(props *auth.Properties) (string, error) {
	if props == nil {
		return "", fmt.Errorf("properties are required")
	}

	now := c.opts.now()
	plaintext, err := json.Marshal(encryptedEnvelope{
		Purpose:   c.opts.purpose,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(c.opts.ttl).Unix(),
		State:     toPayload(props),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	object, err := c.encrypter.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt state: %w", err)
	}
	return object.CompactSerialize()
}

// Unprotect implements Codec.
func (c *EncryptedCodec) Unprotect(protected string) (*auth.Properties, error) {
	if protected == "" {
		return nil, ErrEmptyState
	}

	object, err := jose.ParseEncrypted(protected,
		[]jose.KeyAlgorithm{jose.DIRECT},
		[]jose.ContentEncryption{jose.A256GCM},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	plaintext, err := object.Decrypt(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	var envelope encryptedEnvelope
	if err := json.Unmarshal(plaintext, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if envelope.Purpose != c.opts.purpose {
		return nil, fmt.Errorf("%w: purpose mismatch", ErrInvalidState)
	}
	if c.opts.now().Unix() >= envelope.ExpiresAt {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, ErrExpired)
	}

	return envelope.State.properties(), nil
}
