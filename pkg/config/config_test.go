// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stacklok/toolhive-core/env/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/linkedin-auth/pkg/auth"
	"github.com/stacklok/linkedin-auth/pkg/auth/linkedin"
	"github.com/stacklok/linkedin-auth/pkg/auth/state"
)

func testKey() string {
	return EncodeKey([]byte(strings.Repeat("k", state.MinKeyLength)))
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
server:
  address: ":9090"
linkedin:
  client_id: cid
  client_secret: secret
  scopes: [r_liteprofile]
  backchannel_timeout: 5s
state:
  codec: encrypted
  ttl: 5m
telemetry:
  prometheus: false
`))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout, "defaults survive partial files")
	assert.Equal(t, "cid", cfg.LinkedIn.ClientID)
	assert.Equal(t, []string{"r_liteprofile"}, cfg.LinkedIn.Scopes)
	assert.Equal(t, 5*time.Second, cfg.LinkedIn.BackchannelTimeout)
	assert.Equal(t, linkedin.DefaultCallbackPath, cfg.LinkedIn.CallbackPath)
	assert.Equal(t, CodecEncrypted, cfg.State.Codec)
	assert.Equal(t, 5*time.Minute, cfg.State.TTL)
	assert.False(t, cfg.Telemetry.EnablePrometheusMetricsPath)
	assert.Equal(t, "linkedin-auth", cfg.Telemetry.ServiceName)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("linkedin:\n  client_idd: typo\n"))
	require.Error(t, err, "unknown keys are rejected")

	_, err = Parse([]byte("server: [not, a, map]"))
	require.Error(t, err)

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().Getenv(ClientIDEnvVar).Return("env-id")
	reader.EXPECT().Getenv(ClientSecretEnvVar).Return("")
	reader.EXPECT().Getenv(StateKeyEnvVar).Return(testKey())

	cfg := Default()
	cfg.LinkedIn.ClientSecret = "file-secret"
	cfg.State.KeyFile = "/etc/linkedin-auth/state.key"
	cfg.ApplyEnv(reader)

	assert.Equal(t, "env-id", cfg.LinkedIn.ClientID)
	assert.Equal(t, "file-secret", cfg.LinkedIn.ClientSecret)
	assert.Equal(t, testKey(), cfg.State.Key)
	assert.Empty(t, cfg.State.KeyFile, "the environment key replaces the key file")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := Default()
		cfg.LinkedIn.ClientID = "cid"
		cfg.LinkedIn.ClientSecret = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing client id", mutate: func(c *Config) { c.LinkedIn.ClientID = "" }, wantErr: "linkedin: client_id is required"},
		{name: "missing address", mutate: func(c *Config) { c.Server.Address = "" }, wantErr: "server.address is required"},
		{name: "unknown codec", mutate: func(c *Config) { c.State.Codec = "rot13" }, wantErr: "codec must be"},
		{name: "short key", mutate: func(c *Config) { c.State.Key = EncodeKey([]byte("short")) }, wantErr: state.ErrKeyTooShort.Error()},
		{name: "bad base64", mutate: func(c *Config) { c.State.Key = "%%%" }, wantErr: "invalid base64"},
		{
			name: "key and key file",
			mutate: func(c *Config) {
				c.State.Key = testKey()
				c.State.KeyFile = "/tmp/key"
			},
			wantErr: "mutually exclusive",
		},
		{name: "missing key file", mutate: func(c *Config) { c.State.KeyFile = "/does/not/exist" }, wantErr: "key_file"},
		{name: "missing ca bundle", mutate: func(c *Config) { c.CACertificatePath = "/does/not/exist" }, wantErr: "ca_certificate_path"},
		{name: "bad telemetry", mutate: func(c *Config) { c.Telemetry.SamplingRate = 3 }, wantErr: "telemetry:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStateConfig_NewCodec(t *testing.T) {
	t.Parallel()

	props := auth.NewProperties("https://app.example.com/private")

	for _, kind := range []string{CodecSigned, CodecEncrypted} {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			sc := StateConfig{Codec: kind, Key: testKey(), TTL: time.Minute}
			codec, err := sc.NewCodec("LinkedIn")
			require.NoError(t, err)

			protected, err := codec.Protect(props)
			require.NoError(t, err)
			got, err := codec.Unprotect(protected)
			require.NoError(t, err)
			assert.Equal(t, props.RedirectURI, got.RedirectURI)

			other, err := sc.NewCodec("Other")
			require.NoError(t, err)
			_, err = other.Unprotect(protected)
			require.ErrorIs(t, err, state.ErrInvalidState, "purpose binds the state")
		})
	}

	t.Run("key file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "state.key")
		require.NoError(t, os.WriteFile(path, []byte(testKey()+"\n"), 0o600))

		sc := StateConfig{Codec: CodecSigned, KeyFile: path}
		require.True(t, sc.HasKey())
		_, err := sc.NewCodec("LinkedIn")
		require.NoError(t, err)
	})

	t.Run("no key", func(t *testing.T) {
		t.Parallel()

		sc := StateConfig{Codec: CodecSigned}
		assert.False(t, sc.HasKey())
		_, err := sc.NewCodec("LinkedIn")
		require.Error(t, err)
	})
}
