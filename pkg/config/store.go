// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/linkedin-auth/pkg/logger"
)

// lockTimeout is the maximum time to wait for a file lock
const lockTimeout = 1 * time.Second

// Store defines the interface for configuration storage operations
type Store interface {
	// Load reads the configuration. A missing file yields the defaults.
	Load(ctx context.Context) (*Config, error)
	// Save writes the configuration.
	Save(ctx context.Context, config *Config) error
	// Exists checks if configuration exists in storage
	Exists(ctx context.Context) (bool, error)
	// Update performs a locked read-modify-write of the configuration
	Update(ctx context.Context, updateFn func(*Config) error) error
}

// LocalStore implements Store using local file system
type LocalStore struct {
	configPath string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates a file-based store. An empty path selects the
// per-user default location.
func NewLocalStore(configPath string) *LocalStore {
	return &LocalStore{configPath: configPath}
}

func (s *LocalStore) path() (string, error) {
	if s.configPath != "" {
		return filepath.Clean(s.configPath), nil
	}
	p, err := getConfigPath()
	if err != nil {
		return "", fmt.Errorf("unable to fetch config path: %w", err)
	}
	return p, nil
}

// Load loads configuration from local file
func (s *LocalStore) Load(_ context.Context) (*Config, error) {
	configPath, err := s.path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) // #nosec G304 - path comes from the command line or xdg
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debugf("no configuration file at %s, using defaults", configPath)
			return Default(), nil
		}
		return nil, fmt.Errorf("unable to read config file %s: %w", configPath, err)
	}

	return Parse(data)
}

// Save saves configuration to local file
func (s *LocalStore) Save(_ context.Context, config *Config) error {
	configPath, err := s.path()
	if err != nil {
		return err
	}

	configBytes, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	// The file may hold the client secret and the state key.
	if err := os.WriteFile(configPath, configBytes, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Exists checks if local config file exists
func (s *LocalStore) Exists(_ context.Context) (bool, error) {
	configPath, err := s.path()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}
	return true, nil
}

// Update performs a locked update operation on the configuration
func (s *LocalStore) Update(ctx context.Context, updateFn func(*Config) error) error {
	configPath, err := s.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Use a separate lock file for cross-platform compatibility
	fileLock := flock.New(configPath + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock: timeout after %v", lockTimeout)
	}
	defer func() { _ = fileLock.Unlock() }()

	// Load the config after acquiring the lock to avoid race conditions
	config, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := updateFn(config); err != nil {
		return err
	}

	if err := s.Save(ctx, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
