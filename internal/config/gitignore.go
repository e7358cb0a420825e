package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitignoreContent keeps the downloaded distribution and its mutable runtime
// state out of version control. The config file itself is tracked.
const gitignoreContent = `# tcdev-managed TeamCity state (auto-generated)
# tcdev.yaml is tracked; the distribution and its data are not.
servers/
.datadir/
*.log
`

// GitignoreContent returns the .gitignore content written next to a
// project-local tcdev.yaml. Exported for testing.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore writes the .gitignore next to a project-local tcdev.yaml,
// creating dir if needed. An existing file is left untouched, whatever its
// content. Reports whether a new file was written.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}
	//nolint:gosec // .gitignore must be world-readable.
	if err := os.WriteFile(path, []byte(gitignoreContent), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
