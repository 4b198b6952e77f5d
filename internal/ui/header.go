package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // e.g. "v0.3.0"
	Server  string // backend base URL
}

// HeaderWidth is the width of the header divider.
const HeaderWidth = 50

// RenderHeader renders the branded header printed above one-shot output.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorNeonPink).Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorNeonCyan)
	dividerStyle := lipgloss.NewStyle().Foreground(ColorGlassBorder)

	var out strings.Builder
	out.WriteString(titleStyle.Render("tracker"))
	if info.Version != "" {
		out.WriteString(" ")
		out.WriteString(versionStyle.Render(info.Version))
	}
	out.WriteString("\n")
	if info.Server != "" {
		out.WriteString(MutedStyle().Render(info.Server))
		out.WriteString("\n")
	}
	out.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	out.WriteString("\n")
	return out.String()
}
