// Package deploy copies the built plugin package into the TeamCity data
// directory's plugins folder.
package deploy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sudheej/tcdev/internal/config"
)

// pluginsSubdir is the folder inside the data directory that TeamCity scans
// for plugin packages.
const pluginsSubdir = "plugins"

// Deploy copies <BuildOutputDir>/<PackageFile> into the data directory's
// plugins folder, overwriting any previous copy and creating intermediate
// directories. It always returns the resolved effective data directory: an
// absolute DataDir is used as-is, a relative one resolves against
// InstallDir.
//
// A missing package is a warning, not an error — the usual cause is a
// skipped build step, and failing here would mask the real omission.
func Deploy(cfg config.Config, logger zerolog.Logger) (string, error) {
	dataDir := EffectiveDataDir(cfg)

	pkg := filepath.Join(cfg.BuildOutputDir, cfg.PackageFile)
	info, err := os.Stat(pkg)
	if err != nil || !info.Mode().IsRegular() {
		logger.Warn().
			Str("package", pkg).
			Msg("plugin package not found; nothing deployed — run the build step first")
		return dataDir, nil
	}

	targetDir := filepath.Join(dataDir, pluginsSubdir)
	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return dataDir, fmt.Errorf("creating plugins directory: %w", err)
	}

	target := filepath.Join(targetDir, cfg.PackageFile)
	if err := copyFile(pkg, target); err != nil {
		return dataDir, fmt.Errorf("deploying plugin package: %w", err)
	}

	logger.Info().
		Str("package", pkg).
		Str("target", target).
		Msg("plugin package deployed")
	return dataDir, nil
}

// EffectiveDataDir resolves the data directory for cfg. Recomputed per
// call; nothing caches it.
func EffectiveDataDir(cfg config.Config) string {
	if filepath.IsAbs(cfg.DataDir) {
		return cfg.DataDir
	}
	return filepath.Join(cfg.InstallDir, cfg.DataDir)
}

// copyFile copies src to dst, truncating any existing file.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}
