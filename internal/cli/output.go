package cli

import "github.com/sudheej/tcdev/internal/tui"

// statusLine applies the given style when the session is interactive and
// returns the plain message otherwise, so redirected output (CI logs, shell
// pipes) stays free of escape sequences.
func statusLine(render func(string) string, msg string) string {
	if tui.IsTTY() {
		return render(msg)
	}
	return msg
}
