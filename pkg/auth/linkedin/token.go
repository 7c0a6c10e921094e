// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/stacklok/linkedin-auth/pkg/networking"
)

var (
	// ErrMalformedTokenResponse is returned when the token endpoint body is not a JSON object.
	ErrMalformedTokenResponse = errors.New("malformed token response")

	// ErrMissingAccessToken is returned when the token response has no access_token.
	ErrMissingAccessToken = errors.New("token response is missing access_token")
)

// TokenResponse is the result of a code exchange. It holds a bearer
// credential and must not be logged or persisted.
type TokenResponse struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// String redacts the access token.
func (t *TokenResponse) String() string {
	if t == nil {
		return "<nil>"
	}
	return fmt.Sprintf("TokenResponse{AccessToken:REDACTED, ExpiresIn:%s}", t.ExpiresIn)
}

// OAuth2Token converts the response for use with golang.org/x/oauth2 clients.
func (t *TokenResponse) OAuth2Token(now time.Time) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   "Bearer",
	}
	if t.ExpiresIn > 0 {
		tok.Expiry = now.Add(t.ExpiresIn)
	}
	return tok
}

// TokenClient performs the code exchange against LinkedIn's token endpoint.
// LinkedIn's legacy endpoint takes the grant as GET query parameters, which
// is why this does not use oauth2.Config.Exchange.
type TokenClient struct {
	endpoint   string
	httpClient networking.HTTPClient
}

var _ TokenExchanger = (*TokenClient)(nil)

// NewTokenClient creates a TokenClient for endpoint.
func NewTokenClient(endpoint string, httpClient networking.HTTPClient) *TokenClient {
	return &TokenClient{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// ExchangeCode implements TokenExchanger. Any transport error, non-2xx status
// or missing access_token fails the exchange. No retry is attempted.
func (c *TokenClient) ExchangeCode(
	ctx context.Context,
	code, redirectURI, clientID, clientSecret string,
) (*TokenResponse, error) {
	requestURL := appendQuery(c.endpoint,
		queryParam{"grant_type", "authorization_code"},
		queryParam{"code", code},
		queryParam{"redirect_uri", redirectURI},
		queryParam{"client_id", clientID},
		queryParam{"client_secret", clientSecret},
	)

	result, err := networking.Fetch(ctx, c.httpClient, requestURL,
		networking.WithHeader("Accept", networking.ContentTypeJSON),
		networking.WithDisplayURL(c.endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}

	return parseTokenResponse(result.Body)
}

// parseTokenResponse extracts access_token and expires_in by key, ignoring
// anything else in the object.
func parseTokenResponse(body []byte) (*TokenResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedTokenResponse)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrMalformedTokenResponse)
	}

	accessToken := doc.Get("access_token")
	if !accessToken.Exists() || accessToken.String() == "" {
		return nil, ErrMissingAccessToken
	}

	return &TokenResponse{
		AccessToken: accessToken.String(),
		ExpiresIn:   parseExpiresIn(doc.Get("expires_in")),
	}, nil
}

// parseExpiresIn accepts a number or a numeric string of seconds.
// Anything else yields zero.
func parseExpiresIn(v gjson.Result) time.Duration {
	var seconds int64
	switch v.Type {
	case gjson.Number:
		seconds = v.Int()
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return 0
		}
		seconds = n
	default:
		return 0
	}
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
