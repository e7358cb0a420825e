// Package tui provides terminal detection and styled output helpers for
// tcdev's command-line surface.
package tui

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether both stdin and stdout are attached to a terminal.
// Styled status lines are reserved for interactive sessions; redirected
// output (CI pipelines, shell pipes) stays plain.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
