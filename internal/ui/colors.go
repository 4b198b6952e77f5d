package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/0xpinara/company-tracker/internal/dashboard"
)

// Neon palette shared by the CLI and the dashboard.
const (
	ColorNeonPink    lipgloss.Color = "#FF2E97"
	ColorNeonCyan    lipgloss.Color = "#00FFFF"
	ColorNeonPurple  lipgloss.Color = "#B026FF"
	ColorNeonGreen   lipgloss.Color = "#39FF14"
	ColorNeonOrange  lipgloss.Color = "#FF6B35"
	ColorNeonAmber   lipgloss.Color = "#FFAA00"
	ColorDeepVoid    lipgloss.Color = "#0D0221"
	ColorDarkSurface lipgloss.Color = "#1A1033"
	ColorGlassBorder lipgloss.Color = "#3D2B5C"
)

// Semantic colors
const (
	ColorSuccess lipgloss.Color = ColorNeonGreen
	ColorError   lipgloss.Color = "#FF0055"
	ColorWarning lipgloss.Color = ColorNeonAmber
	ColorInfo    lipgloss.Color = ColorNeonCyan
)

// Text colors
const (
	ColorPrimary   lipgloss.Color = "#FFFFFF"
	ColorSecondary lipgloss.Color = "#B4B4D0"
	ColorMuted     lipgloss.Color = "#6B6B8D"
)

// GradientColors cycles through the spinner frames.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorSuccess) }
func ErrorStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorError) }
func WarningStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorWarning) }
func InfoStyle() lipgloss.Style    { return lipgloss.NewStyle().Foreground(ColorInfo) }
func MutedStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorMuted) }

// KindColor maps a notification kind to its color. Primary shares the
// accent pink; unknown kinds render like info.
func KindColor(kind dashboard.Kind) lipgloss.Color {
	switch kind {
	case dashboard.KindSuccess:
		return ColorSuccess
	case dashboard.KindDanger:
		return ColorError
	case dashboard.KindWarning:
		return ColorWarning
	case dashboard.KindPrimary:
		return ColorNeonPink
	default:
		return ColorInfo
	}
}

// PrintWarning writes a warning line to stderr.
func PrintWarning(msg string) {
	fmt.Fprintln(os.Stderr, WarningStyle().Render(SymbolWarning)+" "+msg)
}

// DisableColors switches lipgloss to plain ASCII output (--no-color, NO_COLOR).
func DisableColors() {
	setProfile(termenv.Ascii)
}

func setProfile(p termenv.Profile) {
	lipgloss.SetColorProfile(p)
}
