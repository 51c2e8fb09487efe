// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"userportal/cli/internal/terminal"
)

var (
	loginCreds credentialFlags
	loginForce bool
)

// loginCmd exchanges a user name and password for a credential token.
// The token is stored in the OS keychain and attached to later requests.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the credential token",
	Long: `The login command sends the user name and password to the backend and stores
the returned token securely in the OS keychain.

If a token is already stored and the backend still accepts it, the login is
skipped unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return reported(err, "loading configuration")
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		// If already logged in with a valid token, short-circuit
		if !loginForce && a.auth.HasToken() {
			if f, err := a.auth.Status(ctx); err == nil && f.LoggedIn {
				pterm.Info.Println("Already logged in. Use --force to log in again.")
				return nil
			}
		}

		creds, err := loginCreds.resolve(terminal.NewPrompter())
		if err != nil {
			return err
		}

		stop := startSpinner("Logging in")
		env, err := a.auth.Login(ctx, creds)
		stop()
		if err != nil {
			printEnvelope(cmd.OutOrStdout(), env)
			return reported(err, "logging in")
		}

		pterm.Success.Printf("Logged in as %s\n", creds.User)
		if env.Message != "" {
			pterm.Println("   " + env.Message)
		}
		return nil
	},
}

func init() {
	loginCreds.bind(loginCmd)
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "Log in even if a valid token is stored")
	rootCmd.AddCommand(loginCmd)
}
