// Package cli wires the braid commands into a cobra command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "braid",
		Short: "Braid wraps everyday git operations into a repeatable branch naming and commit-template workflow",
		Long: `Braid wraps everyday git operations - branch creation, per-branch
commit-message templates and branch cleanup - into a repeatable naming
and workflow convention.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newFinishCmd())
	rootCmd.AddCommand(newTidyCmd())

	return rootCmd
}
