// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/linkedin-auth/pkg/networking"
)

const profilePath = "/v1/people/~:(id,first-name,last-name,formatted-name,email-address,public-profile-url)"

func TestProfileClient_FetchProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantID     string
		wantLegacy bool
		wantStatus int
	}{
		{
			name:   "full profile",
			status: http.StatusOK,
			body:   fullProfileXML,
			wantID: "AbC123",
		},
		{
			name:   "partial profile",
			status: http.StatusOK,
			body:   partialProfileXML,
			wantID: "XyZ",
		},
		{
			name:       "json instead of xml",
			status:     http.StatusOK,
			body:       `{"id":"AbC123"}`,
			wantLegacy: true,
		},
		{
			name:       "expired token",
			status:     http.StatusUnauthorized,
			body:       xmlDeclaration + `<error><status>401</status></error>`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, profilePath, r.URL.EscapedPath())
				assert.Equal(t, "oauth2_access_token=tok%2B1", r.URL.RawQuery)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			endpoint := srv.URL + profilePath
			user, err := NewProfileClient(endpoint, srv.Client()).FetchProfile(context.Background(), "tok+1")

			switch {
			case tt.wantLegacy:
				require.ErrorIs(t, err, ErrLegacyFormat)
			case tt.wantStatus != 0:
				require.Error(t, err)
				assert.True(t, networking.IsHTTPError(err, tt.wantStatus))
				assert.NotContains(t, err.Error(), "tok%2B1")
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, user["id"])
			}
		})
	}
}

func TestProfileClient_RequiresToken(t *testing.T) {
	t.Parallel()

	_, err := NewProfileClient(ProfileEndpoint, http.DefaultClient).FetchProfile(context.Background(), "")
	require.Error(t, err)
}
