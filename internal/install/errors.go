package install

import "errors"

// Sentinel errors for installation failures. Both are fatal to the
// invocation; callers match with errors.Is.
var (
	// ErrInstallationUnreadable indicates the installation exists but its
	// version metadata is missing or unparseable.
	ErrInstallationUnreadable = errors.New("installation unreadable")

	// ErrInstallationMissing indicates no usable installation exists and the
	// user declined to download one.
	ErrInstallationMissing = errors.New("installation missing")
)
