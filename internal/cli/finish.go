package cli

import (
	"github.com/spf13/cobra"

	"braid.dev/braid/internal/actions"
	"braid.dev/braid/internal/runtime"
)

// newFinishCmd creates the finish command
func newFinishCmd() *cobra.Command {
	var opts actions.FinishOptions

	cmd := &cobra.Command{
		Use:   "finish",
		Short: "Finish a branch: remove its commit template and delete it locally",
		Long: `Finish a branch: remove its commit template configuration, return to
the base branch (pulling when it has an upstream) and delete the branch
with a safe delete. A branch that is not fully merged is left in place
with a warning.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			return actions.Finish(cmd.Context(), rt, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch to finish (defaults to the current branch)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
