// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the linkedin-auth command-line application.
package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stacklok/toolhive-core/env"

	"github.com/stacklok/linkedin-auth/pkg/config"
	"github.com/stacklok/linkedin-auth/pkg/logger"
)

// NewRootCmd creates a new root command for the linkedin-auth CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "linkedin-auth",
		DisableAutoGenTag: true,
		Short:             "Sign users in with LinkedIn",
		Long: `linkedin-auth runs a small web application that signs users in with
LinkedIn's OAuth2 authorization code flow.

Configuration is read from a YAML file (by default in the XDG config directory).
The client secret and the state key can be supplied through LINKEDIN_CLIENT_ID,
LINKEDIN_CLIENT_SECRET and LINKEDIN_STATE_KEY instead.`,
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Initialize()
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	if err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default: XDG config dir)")
	err = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	if err != nil {
		logger.Errorf("Error binding config flag: %v", err)
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Silence printing the usage on error
	rootCmd.SilenceUsage = true

	return rootCmd
}

func configStore() *config.LocalStore {
	return config.NewLocalStore(viper.GetString("config"))
}

func osEnv() env.Reader {
	return &env.OSReader{}
}

// loadConfig reads the configuration file and applies environment overrides.
func loadConfig(ctx context.Context, store config.Store, envReader env.Reader) (*config.Config, error) {
	cfg, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("configuration loading failed: %w", err)
	}
	cfg.ApplyEnv(envReader)
	return cfg, nil
}

// newValidateCmd creates the validate command for checking configuration
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long: `Validate the configuration file and environment overrides.

This command checks:
- YAML syntax validity and unknown keys
- LinkedIn client credentials and endpoints
- State codec and key
- Telemetry settings`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Context(), configStore(), osEnv())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			lc := cfg.LinkedIn.WithDefaults()
			cmd.Println("Configuration is valid")
			cmd.Printf("  Address: %s\n", cfg.Server.Address)
			cmd.Printf("  Callback path: %s%s\n", lc.PathBase, lc.CallbackPath)
			cmd.Printf("  Scopes: %v\n", lc.Scopes)
			cmd.Printf("  State codec: %s (persistent key: %t)\n", cfg.State.Codec, cfg.State.HasKey())
			return nil
		},
	}
}
