// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stacklok/linkedin-auth/pkg/auth/state"
	"github.com/stacklok/linkedin-auth/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		clientID  string
		rotateKey bool
		signInAs  string
		codecKind string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or update the configuration file",
		Long: `Create the configuration file if it does not exist, or update it in place.

A random state key is generated when none is configured, or when --rotate-key
is given. The client secret is never written by this command; supply it with
LINKEDIN_CLIENT_SECRET or edit the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd.Context(), configStore(), initOptions{
				clientID:  clientID,
				signInAs:  signInAs,
				codec:     codecKind,
				rotateKey: rotateKey,
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "LinkedIn application (API) key")
	cmd.Flags().StringVar(&signInAs, "sign-in-as", "", "Authentication type granted on sign-in")
	cmd.Flags().StringVar(&codecKind, "state-codec", "", "State codec: signed or encrypted")
	cmd.Flags().BoolVar(&rotateKey, "rotate-key", false, "Generate a new state key even if one exists")

	return cmd
}

type initOptions struct {
	clientID  string
	signInAs  string
	codec     string
	rotateKey bool
}

func initConfig(ctx context.Context, store config.Store, opts initOptions) error {
	return store.Update(ctx, func(cfg *config.Config) error {
		if opts.clientID != "" {
			cfg.LinkedIn.ClientID = opts.clientID
		}
		if opts.signInAs != "" {
			cfg.LinkedIn.SignInAsAuthenticationType = opts.signInAs
		}
		if opts.codec != "" {
			cfg.State.Codec = opts.codec
		}
		if opts.rotateKey || !cfg.State.HasKey() {
			cfg.State.Key = config.EncodeKey(state.GenerateKey())
			cfg.State.KeyFile = ""
		}
		return nil
	})
}
