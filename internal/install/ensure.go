package install

import (
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/sudheej/tcdev/internal/config"
)

// EnsureReady verifies the configured installation and leaves it usable:
// a bad or missing directory triggers the download path, a version mismatch
// is warned about and tolerated, a good installation passes silently.
// in and out carry the interactive confirmation when one is needed.
func EnsureReady(cfg config.Config, retriever Retriever, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	state, err := Evaluate(cfg.InstallDir, cfg.Version)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("install_dir", cfg.InstallDir).
		Str("expected_version", cfg.Version).
		Stringer("state", state).
		Msg("evaluated installation directory")

	switch state {
	case StateBad:
		return EnsureDownloaded(cfg, retriever, in, out, logger)
	case StateVersionMismatch:
		// Evaluate just read the version successfully, so this re-read only
		// fails if the directory changed underneath us.
		installed, readErr := ReadVersion(cfg.InstallDir)
		if readErr != nil {
			return readErr
		}
		evt := logger.Warn().
			Str("installed", installed).
			Str("expected", cfg.Version)
		if rel := releaseRelation(installed, cfg.Version); rel != "" {
			evt = evt.Str("relation", rel)
		}
		evt.Msg("installed TeamCity version does not match the expected version; continuing with the installed copy")
		return nil
	case StateGood:
		return nil
	}
	return nil
}

// releaseRelation reports whether installed is "older", "newer", or
// "equivalent" relative to expected, when both parse as semantic versions.
// This only enriches the mismatch warning; state classification stays exact
// string comparison ("2021.1" vs "2021.1.0" is still a mismatch, reported
// here as equivalent).
func releaseRelation(installed, expected string) string {
	iv, err := semver.NewVersion(installed)
	if err != nil {
		return ""
	}
	ev, err := semver.NewVersion(expected)
	if err != nil {
		return ""
	}
	switch iv.Compare(ev) {
	case -1:
		return "older"
	case 1:
		return "newer"
	default:
		return "equivalent"
	}
}
