package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"userportal/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `The show command prints the configuration after the config file, .env files,
environment variables and global flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return reported(err, "loading configuration")
		}
		if p, err := config.Path(); err == nil {
			pterm.Fprintln(cmd.ErrOrStderr(), pterm.Gray("# "+p))
		}
		return writeConfig(cmd.OutOrStdout(), cfg, configShowOutput)
	},
}

var configShowOutput string

// writeConfig renders cfg as JSON or YAML.
func writeConfig(w io.Writer, cfg config.Config, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unknown output format %q (use json or yaml)", format)
	}
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return reported(err, "loading configuration")
		}
		if err := config.Save(cfg); err != nil {
			return reported(err, "saving configuration")
		}
		p, _ := config.Path()
		pterm.Success.Printf("Configuration written to %s\n", p)
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVarP(&configShowOutput, "output", "o", "json", "Output format: json or yaml")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
