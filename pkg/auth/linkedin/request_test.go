// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		forwarded   string
		pathBase    string
		wantScheme  string
		wantPath    string
		wantBase    string
		wantCurrent string
	}{
		{
			name:        "root mount over tls",
			target:      "https://app.example.com/private?tab=1",
			wantScheme:  "https",
			wantPath:    "/private",
			wantBase:    "https://app.example.com",
			wantCurrent: "https://app.example.com/private?tab=1",
		},
		{
			name:        "mounted under path base",
			target:      "http://app.example.com/portal/signin-linkedin",
			pathBase:    "/portal/",
			wantScheme:  "http",
			wantPath:    "/signin-linkedin",
			wantBase:    "http://app.example.com/portal",
			wantCurrent: "http://app.example.com/portal/signin-linkedin",
		},
		{
			name:        "path base itself",
			target:      "http://app.example.com/portal",
			pathBase:    "/portal",
			wantScheme:  "http",
			wantPath:    "/",
			wantBase:    "http://app.example.com/portal",
			wantCurrent: "http://app.example.com/portal/",
		},
		{
			name:        "prefix only matches whole segments",
			target:      "http://app.example.com/portals/x",
			pathBase:    "/portal",
			wantScheme:  "http",
			wantPath:    "/portals/x",
			wantBase:    "http://app.example.com/portal",
			wantCurrent: "http://app.example.com/portal/portals/x",
		},
		{
			name:        "forwarded proto behind a proxy",
			target:      "http://app.example.com/private",
			forwarded:   "https, http",
			wantScheme:  "https",
			wantPath:    "/private",
			wantBase:    "https://app.example.com",
			wantCurrent: "https://app.example.com/private",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}
			rc := NewRequestContext(httptest.NewRecorder(), r, tt.pathBase)

			assert.Equal(t, tt.wantScheme, rc.Scheme())
			assert.Equal(t, tt.wantPath, rc.Path())
			assert.Equal(t, tt.wantBase, rc.BaseURI())
			assert.Equal(t, tt.wantCurrent, rc.CurrentURI())
			assert.Equal(t, "app.example.com", rc.Host())
		})
	}
}

func TestRequestContext_Redirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rc := NewRequestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil), "")
	rc.Redirect("https://www.linkedin.com/uas/oauth2/authorization?x=1")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://www.linkedin.com/uas/oauth2/authorization?x=1", rec.Header().Get("Location"))
	assert.Empty(t, rc.QueryString())
}
