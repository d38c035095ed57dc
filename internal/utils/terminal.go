// Package utils contains small helpers shared across commands.
package utils

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive checks if we're in an interactive terminal
func IsInteractive() bool {
	// Allow forcing non-interactive mode via environment variable
	if os.Getenv("BRAID_NON_INTERACTIVE") != "" || os.Getenv("BRAID_TEST_NO_INTERACTIVE") != "" {
		return false
	}

	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}
