package tui

import "github.com/charmbracelet/lipgloss"

// Shared color palette for CLI output.
const (
	// ColorWarning highlights non-fatal conditions (version mismatch,
	// missing package at deploy time).
	ColorWarning = lipgloss.Color("214") // orange
	// ColorOK highlights successful completion messages.
	ColorOK = lipgloss.Color("40") // green
	// ColorMuted de-emphasizes supplementary detail.
	ColorMuted = lipgloss.Color("245") // gray
)

// RenderWarning styles a warning line for terminal display.
func RenderWarning(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Render("⚠ " + msg)
}

// RenderOK styles a success line for terminal display.
func RenderOK(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorOK).Render("✓ " + msg)
}

// RenderMuted styles supplementary detail for terminal display.
func RenderMuted(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(msg)
}
