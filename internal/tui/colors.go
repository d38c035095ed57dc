package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// colorEnabled reports whether styled output should be produced.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// ColorBranchName styles a branch name for display. The current branch is
// highlighted differently.
func ColorBranchName(name string, isCurrent bool) string {
	if !colorEnabled() {
		return name
	}
	if isCurrent {
		return currentStyle.Render(name)
	}
	return branchStyle.Render(name)
}

// ColorPath styles a file path for display.
func ColorPath(path string) string {
	if !colorEnabled() {
		return path
	}
	return pathStyle.Render(path)
}
