// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"net/url"
	"strings"
)

// escapeDataString percent-encodes everything outside the RFC 3986 unreserved
// set. Unlike url.QueryEscape it encodes a space as %20.
func escapeDataString(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// queryParam is one name/value pair of an ordered query string.
type queryParam struct {
	name, value string
}

// appendQuery appends params to endpoint in the given order. url.Values would
// sort them.
func appendQuery(endpoint string, params ...queryParam) string {
	var b strings.Builder
	b.WriteString(endpoint)

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	for _, p := range params {
		b.WriteString(sep)
		b.WriteString(escapeDataString(p.name))
		b.WriteByte('=')
		b.WriteString(escapeDataString(p.value))
		sep = "&"
	}
	return b.String()
}

// addQueryString appends name=value to uri, before any fragment.
func addQueryString(uri, name, value string) string {
	base, fragment, hasFragment := strings.Cut(uri, "#")
	out := appendQuery(base, queryParam{name, value})
	if hasFragment {
		out += "#" + fragment
	}
	return out
}
