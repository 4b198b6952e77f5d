package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.Equal(t, 72, TerminalWidth(f, 72))
}

func TestApplyColorMode(t *testing.T) {
	orig := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })

	tests := []struct {
		name    string
		noColor string
		mode    string
		want    termenv.Profile
	}{
		{"never", "", "never", termenv.Ascii},
		{"always", "", "always", termenv.TrueColor},
		{"NO_COLOR beats always", "1", "always", termenv.Ascii},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			lipgloss.SetColorProfile(termenv.ANSI256)

			ApplyColorMode(tt.mode)
			assert.Equal(t, tt.want, lipgloss.ColorProfile())
		})
	}
}

func TestApplyColorMode_AutoLeavesProfile(t *testing.T) {
	orig := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
	t.Setenv("NO_COLOR", "")

	lipgloss.SetColorProfile(termenv.ANSI256)
	ApplyColorMode("auto")
	assert.Equal(t, termenv.ANSI256, lipgloss.ColorProfile())
}
