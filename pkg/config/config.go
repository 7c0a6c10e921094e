// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config contains the definition of the service configuration file
// and the logic required to load, validate and update it.
package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/stacklok/toolhive-core/env"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/linkedin-auth/pkg/auth/linkedin"
	"github.com/stacklok/linkedin-auth/pkg/auth/state"
	"github.com/stacklok/linkedin-auth/pkg/telemetry"
)

// Environment variables that override secrets from the configuration file.
const (
	ClientIDEnvVar     = "LINKEDIN_CLIENT_ID"
	ClientSecretEnvVar = "LINKEDIN_CLIENT_SECRET"
	StateKeyEnvVar     = "LINKEDIN_STATE_KEY"
)

// State codec kinds.
const (
	CodecSigned    = "signed"
	CodecEncrypted = "encrypted"
)

// Config represents the configuration of the service.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	LinkedIn  linkedin.Config  `yaml:"linkedin"`
	State     StateConfig      `yaml:"state"`
	Telemetry telemetry.Config `yaml:"telemetry"`

	// CACertificatePath is an extra CA bundle for outbound TLS.
	CACertificatePath string `yaml:"ca_certificate_path,omitempty"`

	// AllowPrivateIP permits LinkedIn endpoint overrides that resolve to private
	// addresses. Only for local fakes.
	AllowPrivateIP bool `yaml:"allow_private_ip,omitempty"`

	// AllowInsecureHTTP permits plain-HTTP LinkedIn endpoint overrides. Only for local fakes.
	AllowInsecureHTTP bool `yaml:"allow_insecure_http,omitempty"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address           string        `yaml:"address"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout,omitempty"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// StateConfig selects how the state parameter is protected.
type StateConfig struct {
	// Codec is "signed" (HS256 JWT) or "encrypted" (A256GCM JWE).
	Codec string `yaml:"codec"`

	// Key is the base64-encoded secret, at least 32 bytes once decoded.
	// Prefer KeyFile or the LINKEDIN_STATE_KEY environment variable.
	Key string `yaml:"key,omitempty"`

	// KeyFile holds the base64-encoded secret.
	KeyFile string `yaml:"key_file,omitempty"`

	// TTL bounds how long a challenge may take to complete.
	TTL time.Duration `yaml:"ttl,omitempty"`
}

// defaultPathGenerator generates the default config path using xdg
var defaultPathGenerator = func() (string, error) {
	return xdg.ConfigFile("linkedin-auth/config.yaml")
}

// getConfigPath is the current path generator, can be replaced in tests
var getConfigPath = defaultPathGenerator

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	return getConfigPath()
}

// createNewConfigWithDefaults creates a new config with default values
func createNewConfigWithDefaults() Config {
	return Config{
		Server: ServerConfig{
			Address:           ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		LinkedIn: linkedin.Config{
			CallbackPath:       linkedin.DefaultCallbackPath,
			AuthenticationType: linkedin.DefaultAuthenticationType,
			Scopes:             []string{"r_basicprofile", "r_emailaddress"},
			BackchannelTimeout: linkedin.DefaultBackchannelTimeout,
		},
		State: StateConfig{
			Codec: CodecSigned,
			TTL:   state.DefaultTTL,
		},
		Telemetry: telemetry.DefaultConfig(),
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := createNewConfigWithDefaults()
	return &cfg
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := createNewConfigWithDefaults()
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file yaml: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv overrides secrets with values from the environment.
func (c *Config) ApplyEnv(envReader env.Reader) {
	if v := envReader.Getenv(ClientIDEnvVar); v != "" {
		c.LinkedIn.ClientID = v
	}
	if v := envReader.Getenv(ClientSecretEnvVar); v != "" {
		c.LinkedIn.ClientSecret = v
	}
	if v := envReader.Getenv(StateKeyEnvVar); v != "" {
		c.State.Key = v
		c.State.KeyFile = ""
	}
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	lc := c.LinkedIn.WithDefaults()
	if err := lc.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("linkedin: %w", err))
	}
	if err := c.State.validate(); err != nil {
		errs = append(errs, fmt.Errorf("state: %w", err))
	}
	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}
	if c.CACertificatePath != "" {
		if _, err := validateFilePath(c.CACertificatePath); err != nil {
			errs = append(errs, fmt.Errorf("ca_certificate_path: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *StateConfig) validate() error {
	switch s.Codec {
	case CodecSigned, CodecEncrypted:
	default:
		return fmt.Errorf("codec must be %q or %q, got %q", CodecSigned, CodecEncrypted, s.Codec)
	}
	if s.TTL < 0 {
		return fmt.Errorf("ttl must not be negative, got %s", s.TTL)
	}
	if s.Key != "" && s.KeyFile != "" {
		return errors.New("key and key_file are mutually exclusive")
	}
	if s.Key != "" {
		if _, err := decodeKey(s.Key); err != nil {
			return fmt.Errorf("key: %w", err)
		}
	}
	if s.KeyFile != "" {
		if _, err := validateFilePath(s.KeyFile); err != nil {
			return fmt.Errorf("key_file: %w", err)
		}
	}
	return nil
}

// HasKey reports whether a persistent key is configured.
func (s *StateConfig) HasKey() bool {
	return s.Key != "" || s.KeyFile != ""
}

// NewCodec builds the configured state codec. purpose binds the protected
// state to one authentication type. It fails when no key is configured.
func (s *StateConfig) NewCodec(purpose string) (state.Codec, error) {
	encoded := s.Key
	if s.KeyFile != "" {
		data, err := readFile(s.KeyFile)
		if err != nil {
			return nil, err
		}
		encoded = string(data)
	}
	if encoded == "" {
		return nil, errors.New("no state key configured")
	}

	key, err := decodeKey(encoded)
	if err != nil {
		return nil, err
	}

	opts := []state.Option{state.WithPurpose(purpose)}
	if s.TTL > 0 {
		opts = append(opts, state.WithTTL(s.TTL))
	}

	if s.Codec == CodecEncrypted {
		return state.NewEncryptedCodec(key, opts...)
	}
	return state.NewSignedCodec(key, opts...)
}

// EncodeKey renders a key the way the configuration file expects it.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

func decodeKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	if len(key) < state.MinKeyLength {
		return nil, state.ErrKeyTooShort
	}
	return key, nil
}
