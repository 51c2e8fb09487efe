package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Read or submit portal data",
}

var dataGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch data from the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return reported(err, "loading configuration")
		}
		env, err := a.be.GetData(cmd.Context())
		printEnvelope(cmd.OutOrStdout(), env)
		if err != nil {
			return reported(err, "fetching data")
		}
		warnIfLoggedOut(env.NotLoggedIn())
		return nil
	},
}

var dataSubmitFile string

var dataSubmitCmd = &cobra.Command{
	Use:   "submit [json]",
	Short: "Submit a JSON document to the backend",
	Long: `The submit command posts a JSON document to the backend. The document is
taken from the argument, from --file, or from stdin when the argument is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(cmd.InOrStdin(), args, dataSubmitFile)
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return reported(err, "loading configuration")
		}
		env, err := a.be.SubmitData(cmd.Context(), payload)
		printEnvelope(cmd.OutOrStdout(), env)
		if err != nil {
			return reported(err, "submitting data")
		}
		warnIfLoggedOut(env.NotLoggedIn())
		return nil
	},
}

// readPayload returns the JSON document named by args or file.
func readPayload(stdin io.Reader, args []string, file string) (json.RawMessage, error) {
	var raw []byte
	var err error
	switch {
	case file != "" && len(args) > 0:
		return nil, errors.New("pass the document either as an argument or with --file, not both")
	case file != "":
		raw, err = os.ReadFile(file)
	case len(args) == 1 && args[0] == "-":
		raw, err = io.ReadAll(stdin)
	case len(args) == 1:
		raw = []byte(args[0])
	default:
		return nil, errors.New("a JSON document is required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	raw = []byte(strings.TrimSpace(string(raw)))
	if !json.Valid(raw) {
		return nil, errors.New("document is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

func warnIfLoggedOut(notLoggedIn bool) {
	if notLoggedIn {
		pterm.Warning.Println("You're not logged in. Run 'userportal login' to get started.")
	}
}

func init() {
	dataSubmitCmd.Flags().StringVarP(&dataSubmitFile, "file", "f", "", "Read the document from a file")
	dataCmd.AddCommand(dataGetCmd, dataSubmitCmd)
	rootCmd.AddCommand(dataCmd)
}
