package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sudheej/tcdev/internal/config"
)

// defaultConfigFile is where config init writes when --config is not given.
const defaultConfigFile = "tcdev.yaml"

// newConfigCmd groups configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tcdev configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

// newConfigInitCmd creates the config init command for seeding a project
// with a default tcdev.yaml.
func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		version string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: `Creates tcdev.yaml in the current directory (or at --config) populated
with the default configuration. Pass --teamcity-version to pin the expected
TeamCity version up front; otherwise set it in the file afterwards.`,
		Example: `  # Create tcdev.yaml with defaults
  tcdev config init --teamcity-version 2021.1

  # Overwrite an existing file
  tcdev config init --teamcity-version 2021.1 --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = defaultConfigFile
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			seed := config.New()
			seed.Version = version
			if err := seed.Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			// Keep the (large) downloaded distribution out of version
			// control; never touches an existing .gitignore.
			created, err := config.EnsureGitignore(filepath.Dir(path))
			if err != nil {
				return fmt.Errorf("failed to create .gitignore: %w", err)
			}

			cmd.Printf("Configuration initialized at %s\n", path)
			if created {
				cmd.Println("Created .gitignore for tcdev-managed state")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&version, "teamcity-version", "", "expected TeamCity version to record in the file")

	return cmd
}
