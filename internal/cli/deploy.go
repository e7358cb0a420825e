package cli

import (
	"github.com/spf13/cobra"

	"github.com/sudheej/tcdev/internal/deploy"
	"github.com/sudheej/tcdev/internal/tui"
)

// newDeployCmd creates the deploy command.
func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Copy the built plugin package into the TeamCity data directory",
		Long: `Copies <build_output_dir>/<package_file> into the plugins folder of the
effective data directory, overwriting any previous deployment. A missing
package is reported as a warning (the build step was likely skipped) and is
not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			dataDir, err := deploy.Deploy(*cfg, logger)
			if err != nil {
				return err
			}

			cmd.Println(statusLine(tui.RenderMuted, "Data directory: "+dataDir))
			return nil
		},
	}
}
