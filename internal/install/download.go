package install

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sudheej/tcdev/internal/config"
)

// LogCallback receives progress messages from a Retriever. debug selects the
// verbose channel; everything else goes to the informational channel.
type LogCallback func(msg string, debug bool)

// Retriever fetches and unpacks a TeamCity distribution. Implementations own
// the download and unpack mechanics entirely; this package only trusts the
// call to complete without error.
type Retriever interface {
	Download(sourceURL, version string, logf LogCallback) error
}

// EnsureDownloaded fetches a fresh distribution when the installation is
// unusable. Unless cfg.Quiet is set it first asks for confirmation on out,
// reading one line from in: empty input or a leading y/Y accepts, anything
// else declines. Declining is fatal and returns an error wrapping
// ErrInstallationMissing. Retriever failures propagate as-is; there is no
// retry at this layer.
func EnsureDownloaded(cfg config.Config, retriever Retriever, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	if !cfg.Quiet {
		accepted, err := confirmDownload(in, out, cfg.Version, cfg.InstallDir)
		if err != nil {
			return err
		}
		if !accepted {
			return fmt.Errorf("%w: TeamCity %s is not installed in %s and the download was declined", ErrInstallationMissing, cfg.Version, cfg.InstallDir)
		}
	}

	logf := func(msg string, debug bool) {
		if debug {
			logger.Debug().Msg(msg)
		} else {
			logger.Info().Msg(msg)
		}
	}

	if err := retriever.Download(cfg.SourceURL, cfg.Version, logf); err != nil {
		return fmt.Errorf("downloading TeamCity %s: %w", cfg.Version, err)
	}
	return nil
}

// confirmDownload asks the yes/no question. The default answer is yes: an
// empty line (or EOF) accepts, matching the expectation that pressing Enter
// at a first-run prompt gets the user a working server.
func confirmDownload(in io.Reader, out io.Writer, version, dir string) (bool, error) {
	fmt.Fprintf(out, "TeamCity %s is not installed in %s.\n", version, dir)
	fmt.Fprint(out, "? Download and unpack it now? [Y/n] ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("reading download confirmation: %w", err)
		}
		return true, nil
	}

	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return true, nil
	}
	return input[0] == 'y' || input[0] == 'Y', nil
}
