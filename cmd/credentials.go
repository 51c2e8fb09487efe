package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"userportal/cli/internal/auth"
	"userportal/cli/internal/terminal"
)

const (
	envUser     = "USERPORTAL_USER"
	envPassword = "USERPORTAL_PASSWORD"
)

type credentialFlags struct {
	user     string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "User name (or set "+envUser+")")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Password (or set "+envPassword+", will prompt if not provided)")
}

// resolve fills missing credentials from the environment, then from prompts.
func (f *credentialFlags) resolve(p *terminal.Prompter) (auth.Credentials, error) {
	creds := auth.Credentials{User: f.user, Pass: f.password}
	if creds.User == "" {
		creds.User = os.Getenv(envUser)
	}
	if creds.Pass == "" {
		creds.Pass = os.Getenv(envPassword)
	}

	if creds.User == "" {
		u, err := p.Line("User: ")
		if err != nil {
			return creds, err
		}
		creds.User = u
	}
	if creds.User == "" {
		return creds, errors.New("user is required (use --user flag or " + envUser + " env var)")
	}

	if creds.Pass == "" {
		pw, err := p.Password("Password: ", true)
		if errors.Is(err, terminal.ErrNotInteractive) {
			return creds, errors.New("password is required in non-interactive mode (use --password flag or " + envPassword + " env var)")
		}
		if err != nil {
			return creds, err
		}
		creds.Pass = pw
	}
	return creds, nil
}
