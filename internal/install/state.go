// Package install verifies a local TeamCity installation: it classifies the
// installation directory, reads the installed version out of the
// distribution's metadata, and downloads a fresh copy when the directory is
// unusable.
package install

import (
	"os"
	"path/filepath"
)

// markerScript is the relative path whose presence marks a directory as a
// TeamCity installation. The POSIX launcher is probed on every platform,
// Windows included; distributions ship both script families, so this stays a
// reliable shape check even where the .cmd launcher is the one invoked.
const markerScript = "bin/runAll.sh"

// State classifies an installation directory. Recomputed on every check,
// never persisted.
type State int

const (
	// StateBad means the directory is missing or does not look like a
	// TeamCity installation. Zero value on purpose: an unclassified
	// directory is an unusable one.
	StateBad State = iota
	// StateVersionMismatch means a valid installation holds a version other
	// than the expected one. Non-fatal; callers warn and continue.
	StateVersionMismatch
	// StateGood means a valid installation with the expected version.
	StateGood
)

// String returns a short human-readable name for logging.
func (s State) String() string {
	switch s {
	case StateVersionMismatch:
		return "version-mismatch"
	case StateGood:
		return "good"
	default:
		return "bad"
	}
}

// Evaluate classifies dir against expectedVersion. It performs reads only,
// never touches the network, and returns an error (wrapping
// ErrInstallationUnreadable) when the directory looks like an installation
// but its version metadata cannot be extracted — that condition is fatal,
// not StateBad. The returned State is meaningless when err is non-nil.
//
// Version comparison is exact string equality: "2021.1" and "2021.1.0" are
// different versions here.
func Evaluate(dir, expectedVersion string) (State, error) {
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(markerScript))); err != nil {
		return StateBad, nil
	}

	installed, err := ReadVersion(dir)
	if err != nil {
		return StateBad, err
	}

	if installed != expectedVersion {
		return StateVersionMismatch, nil
	}
	return StateGood, nil
}
