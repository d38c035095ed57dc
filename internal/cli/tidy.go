package cli

import (
	"github.com/spf13/cobra"

	"braid.dev/braid/internal/actions"
	"braid.dev/braid/internal/runtime"
)

// newTidyCmd creates the tidy command
func newTidyCmd() *cobra.Command {
	var (
		force                bool
		includeCurrentBranch bool
		orphansOnly          bool
	)

	cmd := &cobra.Command{
		Use:   "tidy",
		Short: "Remove commit template configuration in bulk and sweep orphaned template files",
		Long: `Remove commit template configuration in bulk and sweep orphaned
template files.

Scans every branch recorded in the workflow config plus every template
file on disk; template files no configured branch points at are treated
as orphans and deleted. The current branch is spared unless
--include-current-branch is given.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}

			plan, err := actions.BuildTidyPlan(cmd.Context(), rt, actions.TidyPlanOptions{
				IncludeCurrentBranch: includeCurrentBranch,
				OrphansOnly:          orphansOnly,
			})
			if err != nil {
				return err
			}

			return actions.ExecuteTidyPlan(cmd.Context(), rt, plan, actions.TidyExecuteOptions{
				Force: force,
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&includeCurrentBranch, "include-current-branch", false, "Also remove the current branch's template configuration")
	cmd.Flags().BoolVar(&orphansOnly, "orphans-only", false, "Only delete orphaned template files")

	return cmd
}
