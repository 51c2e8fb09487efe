package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// authCmd asks the backend whether the current session holds the permission.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check the current permission with the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return reported(err, "loading configuration")
		}

		env, err := a.be.UpdateAuth(cmd.Context())
		if err != nil {
			printEnvelope(cmd.OutOrStdout(), env)
			return reported(err, "checking permission")
		}

		printEnvelope(cmd.OutOrStdout(), env)
		pterm.Println()
		printFlags(cmd.OutOrStdout(), a.flags.Snapshot())
		if env.NotLoggedIn() {
			pterm.Warning.Println("You're not logged in. Run 'userportal login' to get started.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
