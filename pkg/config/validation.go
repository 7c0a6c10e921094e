// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Error message templates for consistent error formatting
const (
	errFileNotFound = "file not found or not accessible: %w"
	errFileRead     = "failed to read file: %w"
)

// validateFilePath checks that path exists and returns it cleaned.
func validateFilePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)
	if _, err := os.Stat(cleanPath); err != nil {
		return "", fmt.Errorf(errFileNotFound, err)
	}
	return cleanPath, nil
}

// readFile wraps os.ReadFile with consistent error messaging.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 - path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf(errFileRead, err)
	}
	return data, nil
}
