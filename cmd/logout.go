// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing authentication state.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved credential token",
	Long: `The logout command removes the credential token from the OS keychain.
The backend has no logout endpoint, so the session is only forgotten locally.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return reported(err, "loading configuration")
		}
		if err := a.auth.Logout(cmd.Context()); err != nil {
			return reported(err, "removing the token")
		}
		pterm.Success.Println("The credential token has been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
