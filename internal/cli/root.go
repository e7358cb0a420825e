// Package cli implements the tcdev command-line interface.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sudheej/tcdev/internal/config"
)

// Package-level state set once by the root command's PersistentPreRunE.
//
//nolint:gochecknoglobals // Required for zerolog context integration
var logger zerolog.Logger

//nolint:gochecknoglobals // Loaded once per invocation, read by subcommands
var cfg *config.Config

// NewRootCmd creates the root Cobra command for the tcdev CLI. It wires up
// configuration loading, logging, and the subcommands (ensure, start,
// deploy, version, config).
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tcdev",
		Short: "Manage a local TeamCity installation for plugin development",
		Long: `tcdev keeps a local TeamCity distribution usable as a plugin-development
sandbox: it verifies the installation matches the expected version, downloads
and unpacks it when missing, starts the server (optionally with a build
agent) while streaming its log output, and deploys freshly built plugin
packages into the data directory.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "path to the configuration file (default: ./tcdev.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().Bool("quiet", false, "never prompt; assume yes for the download confirmation")

	cmd.AddCommand(newEnsureCmd(), newStartCmd(), newDeployCmd(), newVersionCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Verify the installation, downloading TeamCity when absent
  tcdev ensure

  # Start the server together with a build agent
  tcdev start

  # Start the server only, passing extra launcher arguments
  tcdev start --server -- start

  # Deploy the built plugin package into the data directory
  tcdev deploy

  # Show the installed TeamCity version
  tcdev version

  # Write a default tcdev.yaml
  tcdev config init`

// loadConfig reads tcdev.yaml plus TCDEV_* environment overrides and applies
// flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		loaded.Quiet = true
	}
	return loaded, nil
}
