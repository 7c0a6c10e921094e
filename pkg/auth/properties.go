// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package auth

import "maps"

// CorrelationKey is the Items key under which the CSRF correlation value travels.
const CorrelationKey = "correlation_id"

// Properties is the return-trip state of an authentication attempt. It is
// created on the challenge leg, carried through the provider in the state
// parameter and consumed once on the callback leg.
type Properties struct {
	// RedirectURI is where the browser goes after the callback completes.
	RedirectURI string `json:"redirect_uri,omitempty"`

	// Items is an extension bag. The correlation value lives under CorrelationKey.
	Items map[string]string `json:"items,omitempty"`
}

// NewProperties returns properties with the given redirect target and an empty Items bag.
func NewProperties(redirectURI string) *Properties {
	return &Properties{
		RedirectURI: redirectURI,
		Items:       make(map[string]string),
	}
}

// Get returns the Items value for key.
func (p *Properties) Get(key string) (string, bool) {
	if p == nil || p.Items == nil {
		return "", false
	}
	v, ok := p.Items[key]
	return v, ok
}

// Set stores an Items value, allocating the bag if needed.
func (p *Properties) Set(key, value string) {
	if p.Items == nil {
		p.Items = make(map[string]string)
	}
	p.Items[key] = value
}

// Delete removes an Items value.
func (p *Properties) Delete(key string) {
	delete(p.Items, key)
}

// Clone returns a deep copy.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	c := *p
	c.Items = maps.Clone(p.Items)
	if c.Items == nil {
		c.Items = make(map[string]string)
	}
	return &c
}
