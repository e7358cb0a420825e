package cli

import (
	"github.com/spf13/cobra"

	"github.com/sudheej/tcdev/internal/logging"
)

// setup loads the configuration and configures logging for the invocation.
// The --debug flag forces console debug output and disables file logging so
// diagnostics land on the terminal where they were asked for.
func setup(cmd *cobra.Command) error {
	loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg = loaded

	logCfg := cfg.Logging
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.File = ""
	}

	result := logging.New(logCfg.ToLoggingConfig())
	if result.FallbackUsed {
		cmd.PrintErrf("Warning: could not open log file, logging to console only: %s\n", result.FallbackReason)
	}

	traceID := logging.GetOrGenerateTraceID(cmd.Context())
	base := result.Logger.With().Str("trace_id", traceID).Logger()
	logger = logging.ComponentLogger(base, "cli")

	ctx := logging.ContextWithTraceID(cmd.Context(), traceID)
	cmd.SetContext(base.WithContext(ctx))
	return nil
}
