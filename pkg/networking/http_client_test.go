// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package networking

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHttpClientBuilder(t *testing.T) {
	t.Parallel()

	builder := NewHttpClientBuilder()

	assert.Equal(t, HttpTimeout, builder.clientTimeout)
	assert.Equal(t, 10*time.Second, builder.tlsHandshakeTimeout)
	assert.Equal(t, 10*time.Second, builder.responseHeaderTimeout)
	assert.Empty(t, builder.caCertPath)
	assert.False(t, builder.allowPrivate)
	assert.False(t, builder.allowHTTP)
	assert.False(t, builder.tracing)
}

func TestHttpClientBuilder_Fluent(t *testing.T) {
	t.Parallel()

	builder := NewHttpClientBuilder()

	assert.Same(t, builder, builder.WithTimeout(5*time.Second))
	assert.Same(t, builder, builder.WithCABundle("/path/to/ca.crt"))
	assert.Same(t, builder, builder.WithPrivateIPs(true))
	assert.Same(t, builder, builder.WithInsecureHTTP(true))
	assert.Same(t, builder, builder.WithTracing(true))

	assert.Equal(t, 5*time.Second, builder.clientTimeout)
	assert.Equal(t, "/path/to/ca.crt", builder.caCertPath)
	assert.True(t, builder.allowPrivate)
	assert.True(t, builder.allowHTTP)
	assert.True(t, builder.tracing)

	builder.WithTimeout(0)
	assert.Equal(t, 5*time.Second, builder.clientTimeout, "non-positive timeout is ignored")
}

func TestHttpClientBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("default client uses validating transport", func(t *testing.T) {
		t.Parallel()

		client, err := NewHttpClientBuilder().Build()
		require.NoError(t, err)
		assert.Equal(t, HttpTimeout, client.Timeout)
		_, ok := client.Transport.(*ValidatingTransport)
		assert.True(t, ok)
	})

	t.Run("missing CA bundle", func(t *testing.T) {
		t.Parallel()

		_, err := NewHttpClientBuilder().WithCABundle("/does/not/exist.pem").Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read CA certificate bundle")
	})

	t.Run("invalid CA bundle", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))

		_, err := NewHttpClientBuilder().WithCABundle(path).Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse CA certificate bundle")
	})

	t.Run("http rejected without insecure flag", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := NewHttpClientBuilder().WithPrivateIPs(true).Build()
		require.NoError(t, err)

		_, err = client.Get(server.URL) //nolint:noctx // test
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not HTTPS scheme")
	})

	t.Run("private IPs blocked by default", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := NewHttpClientBuilder().Build()
		require.NoError(t, err)
		transport := client.Transport.(*ValidatingTransport).Transport.(*http.Transport)
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // test server

		_, err = client.Get(server.URL) //nolint:noctx // test
		require.Error(t, err)
		assert.Contains(t, err.Error(), "private IP range")
	})
}

func TestAddressReferencesPrivateIp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		wantErr bool
	}{
		{"127.0.0.1:443", true},
		{"10.1.2.3:443", true},
		{"192.168.0.10:80", true},
		{"[::1]:443", true},
		{"13.107.42.14:443", false},
		{"not-an-address", true},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			t.Parallel()

			err := AddressReferencesPrivateIp(tt.address)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestScheme(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	assert.Equal(t, "http", RequestScheme(plain))

	secure := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	assert.Equal(t, "https", RequestScheme(secure))

	forwarded := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "HTTPS, http")
	assert.Equal(t, "https", RequestScheme(forwarded))

	bogus := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	bogus.Header.Set("X-Forwarded-Proto", "gopher")
	assert.Equal(t, "http", RequestScheme(bogus))
}
