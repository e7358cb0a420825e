// Package runner launches the TeamCity server (or server plus build agent)
// as a child process and streams its output to the invocation's logger.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Launcher script base names shipped in the distribution's bin directory.
const (
	agentLauncher  = "runAll"
	serverLauncher = "teamcity-server"
)

// Scanner buffer bounds for the output drain. TeamCity can log very long
// single lines (stack traces with nested causes).
const (
	drainInitialBuf = 64 * 1024
	drainMaxLine    = 1024 * 1024
)

// Run starts the server launcher inside dir and blocks until it exits,
// returning the process's exit code unchanged — a non-zero code is the
// caller's to interpret, not an error here.
//
// startAgent selects the runAll launcher (server plus agent) over the
// server-only one; extraArgs are appended verbatim after the launcher path
// ("start", "stop", ...). stdout is drained line by line to logger at info
// level by a single background task; the drain is fully joined before the
// exit code is returned, so every line the child wrote is forwarded, in
// order, before the result is published.
//
// There is no timeout: the call waits as long as the child runs. ctx is
// passed through to the child for external cancellation only.
func Run(ctx context.Context, dir string, startAgent bool, extraArgs []string, logger zerolog.Logger) (int, error) {
	cmd := command(ctx, dir, startAgent, extraArgs)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("attaching stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	logger.Debug().
		Str("dir", dir).
		Strs("args", cmd.Args).
		Msg("starting TeamCity process")

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting TeamCity launcher in %s: %w", dir, err)
	}

	var g errgroup.Group
	g.Go(func() error {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, drainInitialBuf), drainMaxLine)
		for scanner.Scan() {
			logger.Info().Msg(scanner.Text())
		}
		if scanErr := scanner.Err(); scanErr != nil {
			// The pipe must still drain to EOF: after a scan error (an
			// over-long line, say) a child that keeps writing would block
			// on a full pipe and Wait below would never return.
			_, _ = io.Copy(io.Discard, stdout)
			return scanErr
		}
		return nil
	})

	// The drain owns the pipe until EOF; joining it before Wait both
	// satisfies the os/exec pipe contract and guarantees every output line
	// is forwarded before the exit code is published.
	if drainErr := g.Wait(); drainErr != nil {
		logger.Warn().Err(drainErr).Msg("output stream closed with a read error")
	}

	if waitErr := cmd.Wait(); waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("waiting for TeamCity process: %w", waitErr)
	}
	return 0, nil
}

// command builds the OS-appropriate launcher invocation. Windows hosts get
// the batch launcher through cmd /C; everything else runs the shell script
// through /bin/bash. The child runs with dir as its working directory and
// inherits the default environment.
func command(ctx context.Context, dir string, startAgent bool, extraArgs []string) *exec.Cmd {
	name := serverLauncher
	if startAgent {
		name = agentLauncher
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		args := append([]string{"/C", `bin\` + name}, extraArgs...)
		cmd = exec.CommandContext(ctx, "cmd", args...)
	} else {
		args := append([]string{"bin/" + name + ".sh"}, extraArgs...)
		cmd = exec.CommandContext(ctx, "/bin/bash", args...)
	}
	cmd.Dir = dir
	return cmd
}
