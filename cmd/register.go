package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"userportal/cli/internal/terminal"
)

var registerCreds credentialFlags

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `The register command creates an account on the backend. It does not log in;
run 'userportal login' afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return reported(err, "loading configuration")
		}
		creds, err := registerCreds.resolve(terminal.NewPrompter())
		if err != nil {
			return err
		}

		stop := startSpinner("Creating account")
		env, err := a.auth.Register(cmd.Context(), creds)
		stop()
		if err != nil {
			printEnvelope(cmd.OutOrStdout(), env)
			return reported(err, "registering")
		}

		pterm.Success.Printf("Account %s created\n", creds.User)
		if env.Message != "" {
			pterm.Println("   " + env.Message)
		}
		return nil
	},
}

func init() {
	registerCreds.bind(registerCmd)
	rootCmd.AddCommand(registerCmd)
}
