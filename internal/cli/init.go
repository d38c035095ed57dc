package cli

import (
	"github.com/spf13/cobra"

	"braid.dev/braid/internal/runtime"
	"braid.dev/braid/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		initials   string
		baseBranch string
	)

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Initialize the braid workflow config in the current repository",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}

			alreadyInitialized, err := rt.Workflow.Initialize(cmd.Context())
			if err != nil {
				return err
			}

			if initials != "" {
				if err := rt.Workflow.SetInitials(cmd.Context(), initials); err != nil {
					return err
				}
			}
			if baseBranch != "" {
				if err := rt.Workflow.SetBaseBranch(cmd.Context(), baseBranch); err != nil {
					return err
				}
			}

			if alreadyInitialized {
				rt.Splog.Info("Workflow already initialized in %s", tui.ColorPath(rt.Workflow.Path()))
			} else {
				rt.Splog.Info("Workflow initialized in %s", tui.ColorPath(rt.Workflow.Path()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&initials, "initials", "", "Initials appended to generated branch names")
	cmd.Flags().StringVar(&baseBranch, "base-branch", "", "Branch new branches are created from")

	return cmd
}
