package install_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// versionPropsXML renders the XML properties document TeamCity ships inside
// common-api.jar.
func versionPropsXML(displayVersion string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE properties SYSTEM "http://java.sun.com/dtd/properties.dtd">
<properties>
<comment>Server version properties</comment>
<entry key="Display_Version">%s</entry>
<entry key="Build_Number">92714</entry>
</properties>
`, displayVersion)
}

// writeMarker creates the bin/runAll.sh launcher that marks dir as an
// installation.
func writeMarker(t *testing.T, dir string) {
	t.Helper()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "runAll.sh"), []byte("#!/bin/bash\n"), 0o750))
}

// writeVersionJar creates webapps/ROOT/WEB-INF/lib/common-api.jar. entries
// maps archive entry names to contents; pass nil for a jar without the
// version entry.
func writeVersionJar(t *testing.T, dir string, entries map[string]string) {
	t.Helper()
	libDir := filepath.Join(dir, "webapps", "ROOT", "WEB-INF", "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o750))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(libDir, "common-api.jar"), buf.Bytes(), 0o640))
}

// writeInstallation creates a full fake installation reporting the given
// version.
func writeInstallation(t *testing.T, dir, displayVersion string) {
	t.Helper()
	writeMarker(t, dir)
	writeVersionJar(t, dir, map[string]string{
		"serverVersion.properties.xml": versionPropsXML(displayVersion),
	})
}
