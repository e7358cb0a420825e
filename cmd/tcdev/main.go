// Command tcdev manages a local TeamCity installation used for plugin
// development: verifying it, downloading it, starting it, and deploying
// plugin packages into it.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sudheej/tcdev/internal/cli"
	"github.com/sudheej/tcdev/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to a process exit code.
// When the TeamCity child process exits non-zero, tcdev exits with that
// same code.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		var exitErr *cli.ExitCodeError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
