// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"context"
	"errors"
	"fmt"

	"github.com/stacklok/linkedin-auth/pkg/networking"
)

// ProfileClient fetches the member profile from the v1 people API.
type ProfileClient struct {
	endpoint   string
	httpClient networking.HTTPClient
}

var _ ProfileFetcher = (*ProfileClient)(nil)

// NewProfileClient creates a ProfileClient for endpoint.
func NewProfileClient(endpoint string, httpClient networking.HTTPClient) *ProfileClient {
	return &ProfileClient{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// FetchProfile implements ProfileFetcher. The access token travels as the
// oauth2_access_token query parameter and the response goes through LegacyToJSON.
func (c *ProfileClient) FetchProfile(ctx context.Context, accessToken string) (map[string]any, error) {
	if accessToken == "" {
		return nil, errors.New("access token is required")
	}

	requestURL := appendQuery(c.endpoint, queryParam{"oauth2_access_token", accessToken})

	result, err := networking.Fetch(ctx, c.httpClient, requestURL,
		networking.WithDisplayURL(c.endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}

	user, err := LegacyToJSON(string(result.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return user, nil
}
