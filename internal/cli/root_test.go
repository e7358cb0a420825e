package cli_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudheej/tcdev/internal/cli"
)

// chdir changes into dir for the duration of the test (t.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

// writeInstallation creates a fake TeamCity installation reporting the given
// version: the bin/runAll.sh marker plus the common-api.jar version entry.
func writeInstallation(t *testing.T, dir, displayVersion string) {
	t.Helper()

	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "runAll.sh"), []byte("#!/bin/bash\n"), 0o750))

	libDir := filepath.Join(dir, "webapps", "ROOT", "WEB-INF", "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o750))

	props := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE properties SYSTEM "http://java.sun.com/dtd/properties.dtd">
<properties>
<entry key="Display_Version">%s</entry>
</properties>
`, displayVersion)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("serverVersion.properties.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(props))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(libDir, "common-api.jar"), buf.Bytes(), 0o640))
}

// execute runs the root command with args, returning combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := cli.NewRootCmd("test")

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "ensure")
	assert.Contains(t, names, "start")
	assert.Contains(t, names, "deploy")
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "config")
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "TeamCity")
	assert.Contains(t, out, "tcdev ensure")
}

func TestEnsureCmd_RequiresVersion(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "ensure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version is required")
}

func TestDeployCmd_MissingPackagePrintsDataDir(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TCDEV_VERSION", "2021.1")

	out, err := execute(t, "deploy")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("servers", "2021.1", ".datadir"))
}

func TestEnsureCmd_RedirectedOutputIsPlain(t *testing.T) {
	installDir := t.TempDir()
	writeInstallation(t, installDir, "2021.1")
	chdir(t, t.TempDir())
	t.Setenv("TCDEV_VERSION", "2021.1")
	t.Setenv("TCDEV_INSTALL_DIR", installDir)

	out, err := execute(t, "ensure")
	require.NoError(t, err)
	assert.Contains(t, out, "TeamCity 2021.1 ready")
	// Not a terminal here, so no escape sequences.
	assert.NotContains(t, out, "\x1b[")
}

func TestVersionCmd_FullShowsBuildInfo(t *testing.T) {
	installDir := t.TempDir()
	writeInstallation(t, installDir, "2021.1")
	chdir(t, t.TempDir())
	t.Setenv("TCDEV_VERSION", "2021.1")
	t.Setenv("TCDEV_INSTALL_DIR", installDir)

	out, err := execute(t, "version", "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "tcdev:")
	assert.Contains(t, out, "commit:")
	assert.Contains(t, out, "Installed: 2021.1")

	// Without the flag the build metadata stays out of the report.
	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.NotContains(t, out, "commit:")
}

func TestConfigInitCmd_CreatesFile(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "config", "init", "--teamcity-version", "2021.1")
	require.NoError(t, err)
	assert.Contains(t, out, "tcdev.yaml")

	data, err := os.ReadFile("tcdev.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "2021.1")
	assert.Contains(t, string(data), "source_url")
}

func TestConfigInitCmd_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("tcdev.yaml", []byte("version: \"2020.2\"\n"), 0o600))

	_, err := execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, "config", "init", "--teamcity-version", "2021.1", "--force")
	require.NoError(t, err)

	data, readErr := os.ReadFile("tcdev.yaml")
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "2021.1")
}

func TestExitCodeError_Message(t *testing.T) {
	err := &cli.ExitCodeError{Code: 3}
	assert.Contains(t, err.Error(), "3")
}
