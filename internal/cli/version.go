package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sudheej/tcdev/internal/install"
	"github.com/sudheej/tcdev/internal/tui"
	"github.com/sudheej/tcdev/pkg/version"
)

// newVersionCmd creates the version command, which reports the installed
// TeamCity version (not the tcdev build version — that is --version).
func newVersionCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the installed TeamCity version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			if full {
				cmd.Printf("tcdev:     %s\n", version.GetFullVersion())
			}

			installed, err := install.ReadVersion(cfg.InstallDir)
			if err != nil {
				return err
			}

			cmd.Printf("Installed: %s\n", installed)
			cmd.Printf("Expected:  %s\n", cfg.Version)
			if installed != cfg.Version {
				cmd.Println(statusLine(tui.RenderWarning, fmt.Sprintf("installed version %s does not match expected %s", installed, cfg.Version)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "also show tcdev build metadata (version, commit, date)")

	return cmd
}
