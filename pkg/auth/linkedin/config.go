// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultAuthenticationType labels identities produced by this handler.
	DefaultAuthenticationType = "LinkedIn"

	// DefaultCallbackPath is where LinkedIn redirects the browser back to.
	DefaultCallbackPath = "/signin-linkedin"

	// DefaultBackchannelTimeout bounds each call to LinkedIn.
	DefaultBackchannelTimeout = 60 * time.Second

	// AuthorizationEndpoint is LinkedIn's OAuth2 authorization endpoint.
	AuthorizationEndpoint = "https://www.linkedin.com/uas/oauth2/authorization"

	// TokenEndpoint is LinkedIn's OAuth2 token endpoint.
	TokenEndpoint = "https://www.linkedin.com/uas/oauth2/accessToken"

	// ProfileEndpoint is the v1 people API with the fixed field selector.
	ProfileEndpoint = "https://api.linkedin.com/v1/people/~:(id,first-name,last-name,formatted-name,email-address,public-profile-url)"
)

// Config is the immutable configuration of a Handler.
type Config struct {
	// ClientID is the LinkedIn application (API) key.
	ClientID string `json:"client_id" yaml:"client_id"`

	// ClientSecret is the LinkedIn application secret.
	ClientSecret string `json:"client_secret" yaml:"client_secret"`

	// CallbackPath is the path, relative to PathBase, LinkedIn redirects back to.
	CallbackPath string `json:"callback_path,omitempty" yaml:"callback_path,omitempty"`

	// PathBase is the prefix the application is mounted under.
	PathBase string `json:"path_base,omitempty" yaml:"path_base,omitempty"`

	// Scopes are requested in order, comma separated.
	Scopes []string `json:"scopes,omitempty" yaml:"scopes,omitempty"`

	// AuthenticationType labels the identity and its claims' issuer.
	AuthenticationType string `json:"authentication_type,omitempty" yaml:"authentication_type,omitempty"`

	// SignInAsAuthenticationType is the type the identity is re-tagged to before sign-in.
	// Empty disables the sign-in call.
	SignInAsAuthenticationType string `json:"sign_in_as,omitempty" yaml:"sign_in_as,omitempty"`

	// BackchannelTimeout applies to the default HTTP client.
	BackchannelTimeout time.Duration `json:"backchannel_timeout,omitempty" yaml:"backchannel_timeout,omitempty"`

	// Endpoint overrides, for tests and proxies. Defaults are the LinkedIn constants.
	AuthorizationEndpoint string `json:"authorization_endpoint,omitempty" yaml:"authorization_endpoint,omitempty"`
	TokenEndpoint         string `json:"token_endpoint,omitempty" yaml:"token_endpoint,omitempty"`
	ProfileEndpoint       string `json:"profile_endpoint,omitempty" yaml:"profile_endpoint,omitempty"`
}

// WithDefaults returns a copy with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.CallbackPath == "" {
		c.CallbackPath = DefaultCallbackPath
	}
	if c.AuthenticationType == "" {
		c.AuthenticationType = DefaultAuthenticationType
	}
	if c.BackchannelTimeout <= 0 {
		c.BackchannelTimeout = DefaultBackchannelTimeout
	}
	if c.AuthorizationEndpoint == "" {
		c.AuthorizationEndpoint = AuthorizationEndpoint
	}
	if c.TokenEndpoint == "" {
		c.TokenEndpoint = TokenEndpoint
	}
	if c.ProfileEndpoint == "" {
		c.ProfileEndpoint = ProfileEndpoint
	}
	c.PathBase = strings.TrimSuffix(c.PathBase, "/")
	c.Scopes = slices.Clone(c.Scopes)
	return c
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.ClientID == "" {
		errs = append(errs, errors.New("client_id is required"))
	}
	if c.ClientSecret == "" {
		errs = append(errs, errors.New("client_secret is required"))
	}
	if !strings.HasPrefix(c.CallbackPath, "/") {
		errs = append(errs, fmt.Errorf("callback_path must start with '/': %q", c.CallbackPath))
	}
	if c.PathBase != "" && !strings.HasPrefix(c.PathBase, "/") {
		errs = append(errs, fmt.Errorf("path_base must start with '/': %q", c.PathBase))
	}
	if c.AuthenticationType == "" {
		errs = append(errs, errors.New("authentication_type is required"))
	}
	for i, scope := range c.Scopes {
		if scope == "" || strings.Contains(scope, ",") {
			errs = append(errs, fmt.Errorf("scopes[%d] must be non-empty and must not contain ','", i))
		}
	}

	endpoints := []struct{ name, value string }{
		{"authorization_endpoint", c.AuthorizationEndpoint},
		{"token_endpoint", c.TokenEndpoint},
		{"profile_endpoint", c.ProfileEndpoint},
	}
	for _, e := range endpoints {
		if err := validateEndpoint(e.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}

	return errors.Join(errs...)
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errors.New("is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}
