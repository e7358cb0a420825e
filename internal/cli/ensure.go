package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sudheej/tcdev/internal/install"
	"github.com/sudheej/tcdev/internal/retrieve"
	"github.com/sudheej/tcdev/internal/tui"
)

// newEnsureCmd creates the ensure command, the standalone entry point for
// the installation check that start also runs implicitly.
func newEnsureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure",
		Short: "Verify the TeamCity installation, downloading it when needed",
		Long: `Checks that the configured installation directory holds a usable TeamCity
distribution. A missing or unrecognizable directory triggers a download
(after confirmation, unless --quiet); a version mismatch is reported as a
warning and tolerated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			retriever := retrieve.NewHTTPRetriever(cfg.InstallDir)
			if err := install.EnsureReady(*cfg, retriever, cmd.InOrStdin(), cmd.OutOrStdout(), logger); err != nil {
				return err
			}

			cmd.Println(statusLine(tui.RenderOK, fmt.Sprintf("TeamCity %s ready in %s", cfg.Version, cfg.InstallDir)))
			return nil
		},
	}
}
