package cli

import "fmt"

// ExitCodeError carries a child process's non-zero exit code to main so the
// tcdev process can exit with the same code instead of a generic failure.
type ExitCodeError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("teamcity process exited with code %d", e.Code)
}
