package ui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of f, or fallback when it isn't a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// ApplyColorMode sets the lipgloss color profile from an output.color value:
// "never" strips colors, "always" forces them even when piped, anything else
// leaves terminal detection alone. NO_COLOR always wins.
func ApplyColorMode(mode string) {
	if os.Getenv("NO_COLOR") != "" {
		DisableColors()
		return
	}
	switch mode {
	case "never":
		DisableColors()
	case "always":
		setProfile(termenv.TrueColor)
	}
}
