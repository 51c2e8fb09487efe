// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the userportal CLI.
// It implements subcommands for registration, login, permission checks and
// data access against a user-portal backend using the Cobra CLI framework.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool

	flagBaseURL   string
	flagTimeout   string
	flagVerbose   bool
	flagNoKeyring bool
)

// errReported marks errors that were already shown to the user.
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "userportal",
	Short: "userportal CLI for account login and data access",
	Long: `userportal is a command-line client for a user-portal backend. It registers
accounts, logs in, checks the current permission and reads or submits data.
The credential token is kept in the OS keychain between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version information")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", "", "Backend base URL (overrides USERPORTAL_BASE_URL)")
	pf.StringVar(&flagTimeout, "timeout", "", "Per-request timeout, e.g. 5s or 5000 (overrides USERPORTAL_TIMEOUT)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&flagNoKeyring, "no-keyring", false, "Do not use the OS keychain; read the token from USERPORTAL_TOKEN")
}

// reported presents err to the user and returns an error Execute will not print again.
func reported(err error, action string) error {
	if err == nil {
		return nil
	}
	presentError(err, action)
	return fmt.Errorf("%s: %w", action, errReported)
}
