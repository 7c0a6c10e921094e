// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package linkedin

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// Fixed offsets of the legacy payload. They match LinkedIn's v1 XML response
// and are kept as a compatibility fixture; do not adjust them without real
// provider samples.
const (
	// legacyPrefixLength covers `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` and its newline.
	legacyPrefixLength = 56

	// legacyWrapperPrefixLength covers `{"person":`.
	legacyWrapperPrefixLength = 10

	// legacyWrapperSuffixLength covers the closing `}` of the wrapper object.
	legacyWrapperSuffixLength = 1
)

// ErrLegacyFormat is returned when a payload does not have the legacy shape.
var ErrLegacyFormat = errors.New("unrecognized legacy profile payload")

// LegacyToJSON turns the v1 profile payload into a JSON object:
//
//  1. drop the first 56 characters (the XML declaration line);
//  2. parse the remainder as an XML document;
//  3. serialize the document to JSON;
//  4. drop the first 10 and the last character of that serialization,
//     unwrapping the root element.
//
// Failure at any step fails the whole transformation. The function is pure.
func LegacyToJSON(raw string) (map[string]any, error) {
	if len(raw) < legacyPrefixLength {
		return nil, fmt.Errorf("%w: payload is shorter than %d characters", ErrLegacyFormat, legacyPrefixLength)
	}

	doc, err := mxj.NewMapXml([]byte(raw[legacyPrefixLength:]))
	if err != nil {
		return nil, fmt.Errorf("%w: parse document: %w", ErrLegacyFormat, err)
	}

	serialized, err := doc.Json()
	if err != nil {
		return nil, fmt.Errorf("%w: serialize document: %w", ErrLegacyFormat, err)
	}
	if len(serialized) < legacyWrapperPrefixLength+legacyWrapperSuffixLength {
		return nil, fmt.Errorf("%w: serialized document is too short", ErrLegacyFormat)
	}

	inner := serialized[legacyWrapperPrefixLength : len(serialized)-legacyWrapperSuffixLength]

	var user map[string]any
	if err := json.Unmarshal(inner, &user); err != nil {
		return nil, fmt.Errorf("%w: unwrap document: %w", ErrLegacyFormat, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unwrapped document is not an object", ErrLegacyFormat)
	}
	return user, nil
}
