// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCommand(a *App) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account on the transcription service.

The current session is not changed; log in afterwards with "transcriber login".
The password is prompted for when --password is not given.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = a.readPassword("Password: "); err != nil {
					return err
				}
			}

			user, err := a.services.Session.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}

			return a.printer.user(user)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account e-mail")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

func newLoginCommand(a *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Exchange a username and a password for an access token.

The token is stored in the local database and reused by the following
commands until "transcriber logout". A rejected login keeps the previous
session.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				_, _ = fmt.Fprint(a.errOut, "Username: ")
				line, err := a.readLine()
				if err != nil {
					return err
				}
				username = line
			}
			if password == "" {
				var err error
				if password, err = a.readPassword("Password: "); err != nil {
					return err
				}
			}

			session, err := a.services.Session.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			if ok, err := a.printer.structured(sessionView{User: *session.User}); ok {
				return err
			}
			return a.printer.message("Logged in as %s", session.User.Username)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

func newLogoutCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Long:  "Remove the stored token and the cached transcriptions. Makes no network call.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.services.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			return a.printer.message("Logged out")
		},
	}
}

func newWhoamiCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.requireUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.session(session)
		},
	}
}
