package cli

import (
	"github.com/spf13/cobra"

	"github.com/sudheej/tcdev/internal/install"
	"github.com/sudheej/tcdev/internal/logging"
	"github.com/sudheej/tcdev/internal/retrieve"
	"github.com/sudheej/tcdev/internal/runner"
)

// newStartCmd creates the start command. It ensures the installation first,
// then launches the server and streams its output until exit.
func newStartCmd() *cobra.Command {
	var serverOnly bool

	cmd := &cobra.Command{
		Use:   "start [-- launcher-args...]",
		Short: "Start the TeamCity server (and build agent) and stream its output",
		Long: `Starts the distribution's launcher script as a child process, forwarding
its output line by line until it exits. By default both the server and a
build agent are started (the runAll launcher); --server starts the server
alone. Arguments after -- are passed to the launcher verbatim.

The command blocks for as long as the server process runs and exits with
the process's own exit code.`,
		Example: `  # Server plus agent, blocking until shutdown
  tcdev start

  # Server only, detached via TeamCity's own launcher argument
  tcdev start --server -- start`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			retriever := retrieve.NewHTTPRetriever(cfg.InstallDir)
			if err := install.EnsureReady(*cfg, retriever, cmd.InOrStdin(), cmd.OutOrStdout(), logger); err != nil {
				return err
			}

			startAgent := cfg.StartAgent
			if serverOnly {
				startAgent = false
			}

			procLogger := logging.ComponentLogger(*logging.FromContext(cmd.Context()), "teamcity")
			code, err := runner.Run(cmd.Context(), cfg.InstallDir, startAgent, args, procLogger)
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitCodeError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&serverOnly, "server", false, "start the server without a build agent")

	return cmd
}
