// Package retrieve implements the default Retriever: it downloads a
// TeamCity distribution tarball over HTTP and unpacks it into the
// installation directory.
//
// The install package stays agnostic of these mechanics; it only sees the
// Retriever interface.
package retrieve

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sudheej/tcdev/internal/install"
)

const (
	// distributionFormat names the tarball published for each release.
	distributionFormat = "TeamCity-%s.tar.gz"
	// archiveTopDir is the single top-level directory inside the tarball;
	// it is stripped so the distribution lands directly in the destination.
	archiveTopDir = "TeamCity"

	defaultMaxRetries  = 4
	defaultHTTPTimeout = 30 * time.Minute
)

// HTTPRetriever downloads and unpacks distributions into a fixed
// destination directory.
type HTTPRetriever struct {
	client     *http.Client
	destDir    string
	maxRetries uint64
}

// NewHTTPRetriever returns a retriever unpacking into destDir.
func NewHTTPRetriever(destDir string) *HTTPRetriever {
	return &HTTPRetriever{
		client:     &http.Client{Timeout: defaultHTTPTimeout},
		destDir:    destDir,
		maxRetries: defaultMaxRetries,
	}
}

// NewHTTPRetrieverWithClient returns a retriever with a caller-supplied
// client and retry budget, for tests and constrained environments.
func NewHTTPRetrieverWithClient(destDir string, client *http.Client, maxRetries uint64) *HTTPRetriever {
	return &HTTPRetriever{client: client, destDir: destDir, maxRetries: maxRetries}
}

// Download implements install.Retriever. It fetches
// <sourceURL>/TeamCity-<version>.tar.gz, retrying transient network and
// server errors with capped exponential backoff, and unpacks the result.
// Client errors (4xx) fail immediately.
func (r *HTTPRetriever) Download(sourceURL, version string, logf install.LogCallback) error {
	url := strings.TrimRight(sourceURL, "/") + "/" + fmt.Sprintf(distributionFormat, version)
	logf(fmt.Sprintf("downloading TeamCity %s from %s", version, url), false)

	tmp, err := os.CreateTemp("", "tcdev-dist-*.tar.gz")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	fetch := func() error {
		if _, seekErr := tmp.Seek(0, io.SeekStart); seekErr != nil {
			return backoff.Permanent(seekErr)
		}
		if truncErr := tmp.Truncate(0); truncErr != nil {
			return backoff.Permanent(truncErr)
		}

		resp, getErr := r.client.Get(url)
		if getErr != nil {
			logf(fmt.Sprintf("download attempt failed: %v", getErr), true)
			return getErr
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode >= http.StatusInternalServerError:
			logf(fmt.Sprintf("server returned %s, retrying", resp.Status), true)
			return fmt.Errorf("server error: %s", resp.Status)
		default:
			return backoff.Permanent(fmt.Errorf("fetching %s: %s", url, resp.Status))
		}

		if _, copyErr := io.Copy(tmp, resp.Body); copyErr != nil {
			logf(fmt.Sprintf("download interrupted: %v", copyErr), true)
			return copyErr
		}
		return nil
	}

	if err := backoff.Retry(fetch, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.maxRetries)); err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding download: %w", err)
	}

	logf(fmt.Sprintf("unpacking distribution into %s", r.destDir), false)
	if err := unpack(tmp, r.destDir, logf); err != nil {
		return fmt.Errorf("unpacking distribution: %w", err)
	}

	logf(fmt.Sprintf("TeamCity %s installed in %s", version, r.destDir), false)
	return nil
}

// unpack extracts a gzipped tarball into destDir, stripping the archive's
// top-level directory and preserving file modes so launcher scripts stay
// executable. Entries escaping destDir are rejected.
func unpack(src io.Reader, destDir string, logf install.LogCallback) error {
	gz, err := gzip.NewReader(src)
	if err != nil {
		return fmt.Errorf("opening gzip stream: %w", err)
	}
	defer func() { _ = gz.Close() }()

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, readErr := tr.Next()
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("reading archive: %w", readErr)
		}

		rel := stripTopDir(hdr.Name)
		if rel == "" {
			continue
		}

		target, pathErr := securePath(destDir, rel)
		if pathErr != nil {
			return pathErr
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if mkErr := os.MkdirAll(target, 0o750); mkErr != nil {
				return fmt.Errorf("creating directory %s: %w", rel, mkErr)
			}
		case tar.TypeReg:
			if writeErr := writeFile(target, tr, hdr.FileInfo().Mode()); writeErr != nil {
				return fmt.Errorf("extracting %s: %w", rel, writeErr)
			}
			logf(fmt.Sprintf("unpacked %s", rel), true)
		default:
			// Symlinks and special files do not appear in TeamCity
			// distributions; skip rather than guess.
			logf(fmt.Sprintf("skipping archive entry %s (type %c)", rel, hdr.Typeflag), true)
		}
	}
}

// stripTopDir removes the leading "TeamCity/" component, returning "" for
// the top directory entry itself.
func stripTopDir(name string) string {
	name = strings.TrimPrefix(name, "./")
	if name == archiveTopDir || name == archiveTopDir+"/" {
		return ""
	}
	if rest, ok := strings.CutPrefix(name, archiveTopDir+"/"); ok {
		return rest
	}
	return name
}

// securePath joins rel onto destDir, rejecting traversal outside it.
func securePath(destDir, rel string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination directory", rel)
	}
	return target, nil
}

func writeFile(target string, src io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing file: %w", err)
	}
	return f.Close()
}
