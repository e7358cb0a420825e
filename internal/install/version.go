package install

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// versionArchive is the jar inside the installation that carries the
	// server's version metadata.
	versionArchive = "webapps/ROOT/WEB-INF/lib/common-api.jar"
	// versionEntry is the archive entry holding the version properties.
	versionEntry = "serverVersion.properties.xml"
	// displayVersionKey is the property key with the human-facing version.
	displayVersionKey = "Display_Version"
)

// javaProperties models the XML encoding of a java.util.Properties document
// (<properties><entry key="...">value</entry>...</properties>).
type javaProperties struct {
	Entries []javaPropertyEntry `xml:"entry"`
}

type javaPropertyEntry struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// ReadVersion extracts the installed TeamCity version from dir. It returns
// the Display_Version property value verbatim, with no trimming or
// normalization. Every failure mode wraps ErrInstallationUnreadable and
// names the probed path; extraction failure is an error, never an empty
// version.
func ReadVersion(dir string) (string, error) {
	jarPath := filepath.Join(dir, filepath.FromSlash(versionArchive))

	info, err := os.Stat(jarPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist; re-download the distribution or point install_dir at an unpacked TeamCity", ErrInstallationUnreadable, jarPath)
		}
		return "", fmt.Errorf("%w: probing %s: %v", ErrInstallationUnreadable, jarPath, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrInstallationUnreadable, jarPath)
	}

	archive, err := zip.OpenReader(jarPath)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrInstallationUnreadable, jarPath, err)
	}
	defer func() { _ = archive.Close() }()

	for _, f := range archive.File {
		if f.Name != versionEntry {
			continue
		}
		version, propErr := readDisplayVersion(f)
		if propErr != nil {
			return "", fmt.Errorf("%w: %s in %s: %v", ErrInstallationUnreadable, versionEntry, jarPath, propErr)
		}
		return version, nil
	}

	return "", fmt.Errorf("%w: %s has no %s entry; the archive is damaged or from an unsupported release", ErrInstallationUnreadable, jarPath, versionEntry)
}

// readDisplayVersion parses one properties entry out of the archive file.
func readDisplayVersion(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("opening entry: %w", err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading entry: %w", err)
	}

	var props javaProperties
	if err := xml.Unmarshal(data, &props); err != nil {
		return "", fmt.Errorf("parsing properties document: %w", err)
	}

	for _, entry := range props.Entries {
		if entry.Key == displayVersionKey {
			return entry.Value, nil
		}
	}
	return "", fmt.Errorf("property %q not present", displayVersionKey)
}
