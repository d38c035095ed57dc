package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If BRAID_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.braid/logs/braid.log
func GetLogFilePath() string {
	if customPath := os.Getenv("BRAID_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "braid.log"
	}

	return filepath.Join(homeDir, ".braid", "logs", "braid.log")
}
