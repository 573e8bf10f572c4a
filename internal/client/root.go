// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-transcriber/internal/config"
)

// annotationOffline marks commands that need neither storage nor network.
const annotationOffline = "offline"

func newRootCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcriber",
		Short: "Client for the audio transcription service",
		Long: `transcriber uploads recordings to the transcription service, starts
processing, waits for the result and downloads the generated document.

The session token and the last list of transcriptions are kept in a local
SQLite file (see --db).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.configure(cmd); err != nil {
				return err
			}
			if cmd.Annotations[annotationOffline] == "true" {
				return nil
			}
			return a.open(cmd)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	cmd.AddCommand(
		newRegisterCommand(a),
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newHealthCommand(a),
		newListCommand(a),
		newGetCommand(a),
		newCreateCommand(a),
		newProcessCommand(a),
		newWaitCommand(a),
		newDownloadCommand(a),
		newDeleteCommand(a),
		newVersionCommand(a),
	)

	return cmd
}

// exactArgs is cobra.ExactArgs with usage errors wrapped in ErrUsage.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
