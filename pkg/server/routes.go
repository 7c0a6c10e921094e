// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/stacklok/linkedin-auth/pkg/auth"
	"github.com/stacklok/linkedin-auth/pkg/auth/linkedin"
	"github.com/stacklok/linkedin-auth/pkg/logger"
	"github.com/stacklok/linkedin-auth/pkg/versions"
)

// ReturnURLParam names the /login query parameter holding the post-login target.
const ReturnURLParam = "return_url"

type appRoutes struct {
	handler *linkedin.Handler
}

// home is where the browser lands after a callback.
func (a *appRoutes) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if errCode := r.URL.Query().Get("error"); errCode != "" {
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprintf(w, "LinkedIn sign-in failed: %s\n", errCode)
		return
	}
	_, _ = fmt.Fprintln(w, "LinkedIn sign-in demo. Visit /login to authenticate.")
}

// login always answers 401 after requesting a challenge, which the LinkedIn
// middleware turns into the authorization redirect.
func (a *appRoutes) login(w http.ResponseWriter, r *http.Request) {
	rc := linkedin.NewRequestContext(w, r, a.handler.Config().PathBase)

	target := rc.BaseURI() + "/"
	if returnURL := r.URL.Query().Get(ReturnURLParam); isLocalPath(returnURL) {
		target = rc.BaseURI() + returnURL
	}

	if !linkedin.RequestChallenge(r, a.handler.AuthenticationType(), auth.NewProperties(target)) {
		logger.Errorw("LinkedIn middleware is not mounted, cannot challenge", "path", r.URL.Path)
	}
	w.WriteHeader(http.StatusUnauthorized)
}

// isLocalPath accepts only same-origin absolute paths so /login cannot be
// used as an open redirector.
func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	return !strings.ContainsAny(p, "\\\r\n")
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func version(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(versions.GetVersionInfo()); err != nil {
		http.Error(w, "Failed to marshal version info", http.StatusInternalServerError)
	}
}
