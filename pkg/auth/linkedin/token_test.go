// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/stacklok/linkedin-auth/pkg/networking"
)

func TestTokenClient_ExchangeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantToken   string
		wantExpires time.Duration
		wantErr     error
		wantStatus  int
	}{
		{
			name:        "numeric expires_in",
			status:      http.StatusOK,
			body:        `{"access_token":"tok-1","expires_in":5183999}`,
			wantToken:   "tok-1",
			wantExpires: 5183999 * time.Second,
		},
		{
			name:        "string expires_in",
			status:      http.StatusOK,
			body:        `{"expires_in":"3600","access_token":"tok-2","extra":true}`,
			wantToken:   "tok-2",
			wantExpires: time.Hour,
		},
		{
			name:      "missing expires_in",
			status:    http.StatusOK,
			body:      `{"access_token":"tok-3"}`,
			wantToken: "tok-3",
		},
		{
			name:    "missing access token",
			status:  http.StatusOK,
			body:    `{"expires_in":3600}`,
			wantErr: ErrMissingAccessToken,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>oops</html>`,
			wantErr: ErrMalformedTokenResponse,
		},
		{
			name:    "json array",
			status:  http.StatusOK,
			body:    `["tok"]`,
			wantErr: ErrMalformedTokenResponse,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":"invalid_request","error_description":"missing required parameters"}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/uas/oauth2/accessToken", r.URL.Path)
				assert.Equal(t, networking.ContentTypeJSON, r.Header.Get("Accept"))
				gotQuery = r.URL.RawQuery
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			endpoint := srv.URL + "/uas/oauth2/accessToken"
			client := NewTokenClient(endpoint, srv.Client())
			resp, err := client.ExchangeCode(context.Background(), "the code", "https://app.example.com/signin-linkedin", "cid", "s&cret")

			assert.Equal(t,
				"grant_type=authorization_code&code=the%20code&redirect_uri=https%3A%2F%2Fapp.example.com%2Fsignin-linkedin&client_id=cid&client_secret=s%26cret",
				gotQuery)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantStatus != 0:
				require.Error(t, err)
				assert.True(t, networking.IsHTTPError(err, tt.wantStatus))
				assert.NotContains(t, err.Error(), "s%26cret", "secret must not leak into errors")
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, resp.AccessToken)
				assert.Equal(t, tt.wantExpires, resp.ExpiresIn)
			}
		})
	}
}

func TestTokenClient_TransportErrorHidesSecret(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/token"
	srv.Close()

	_, err := NewTokenClient(endpoint, http.DefaultClient).
		ExchangeCode(context.Background(), "code", "https://app/cb", "cid", "topsecret")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "topsecret")
	assert.Contains(t, err.Error(), endpoint)
}

func TestParseExpiresIn(t *testing.T) {
	t.Parallel()

	tests := map[string]time.Duration{
		`60`:      time.Minute,
		`"60"`:    time.Minute,
		`" 60 "`:  time.Minute,
		`"soon"`:  0,
		`-5`:      0,
		`true`:    0,
		`null`:    0,
		`{"a":1}`: 0,
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseExpiresIn(gjson.Parse(raw)), raw)
	}
}

func TestTokenResponse_Redaction(t *testing.T) {
	t.Parallel()

	resp := &TokenResponse{AccessToken: "secret-token", ExpiresIn: time.Minute}
	assert.NotContains(t, resp.String(), "secret-token")

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := resp.OAuth2Token(now)
	assert.Equal(t, "secret-token", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, now.Add(time.Minute), tok.Expiry)

	assert.True(t, (&TokenResponse{AccessToken: "x"}).OAuth2Token(now).Expiry.IsZero())
}
