package cli

import (
	"github.com/spf13/cobra"

	"braid.dev/braid/internal/actions"
	"braid.dev/braid/internal/runtime"
)

// newCreateCmd creates the create command
func newCreateCmd() *cobra.Command {
	var opts actions.CreateOptions

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a branch under the naming convention, off the base branch",
		Long: `Create a branch under the naming convention, off the base branch.

When no name is given it is built as
<client>-<description>-<timestamp>-<initials>; the client segment is
omitted when empty. The base branch is pulled first when it has a remote
upstream. When a ticket is given and commit templates are enabled, the
branch gets a commit-message template.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				opts.Name = args[0]
			}
			return actions.Create(cmd.Context(), rt, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Client, "client", "", "Client segment of the branch name")
	cmd.Flags().BoolVar(&opts.NoClient, "no-client", false, "Omit the client segment without prompting")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Description segment of the branch name")
	cmd.Flags().StringVar(&opts.Initials, "initials", "", "Initials segment (defaults to workflow.initials)")
	cmd.Flags().StringVar(&opts.BaseBranch, "base-branch", "", "Branch to create from (defaults to workflow.basebranch)")
	cmd.Flags().BoolVar(&opts.UseCurrentAsBase, "use-current-as-base", false, "Create from the currently checked-out branch")
	cmd.Flags().StringVar(&opts.Timestamp, "timestamp", "", "Timestamp segment (defaults to today, yyyymmdd)")
	cmd.Flags().StringVar(&opts.Ticket, "ticket", "", "Ticket number for the commit template")
	cmd.Flags().BoolVar(&opts.NoTicket, "no-ticket", false, "Skip commit template setup without prompting")
	cmd.Flags().BoolVar(&opts.SkipPull, "skip-pull", false, "Do not pull the base branch")
	cmd.Flags().BoolVar(&opts.SkipNameCheck, "skip-name-check", false, "Skip the forbidden-pattern check")

	return cmd
}
