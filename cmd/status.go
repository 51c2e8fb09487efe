package cmd

import (
	"encoding/json"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusJSON bool

// statusCmd shows whether a token is stored and what the backend thinks of it.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"whoami"},
	Short:   "Show login and authorization status",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return reported(err, "loading configuration")
		}

		f, err := a.auth.Status(cmd.Context())
		if err != nil {
			return reported(err, "checking status")
		}

		if statusJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(f)
		}

		printFlags(cmd.OutOrStdout(), f)
		if info, ok := a.auth.TokenInfo(); ok && info.JWT {
			if info.Subject != "" {
				pterm.Fprintln(cmd.OutOrStdout(), pterm.Sprintf("Subject:    %s", info.Subject))
			}
			if !info.ExpiresAt.IsZero() {
				exp := info.ExpiresAt.Local().Format(time.RFC1123)
				if info.Expired(time.Now()) {
					exp = pterm.Red(exp + " (expired)")
				}
				pterm.Fprintln(cmd.OutOrStdout(), pterm.Sprintf("Expires:    %s", exp))
			}
		}
		if !f.LoggedIn {
			pterm.Println()
			pterm.Println("🔒 You're not logged in yet!")
			pterm.Println("   Run 'userportal login' to get started.")
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the flags as JSON")
	rootCmd.AddCommand(statusCmd)
}
