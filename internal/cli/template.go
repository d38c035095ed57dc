package cli

import (
	"github.com/spf13/cobra"

	"braid.dev/braid/internal/actions"
	"braid.dev/braid/internal/runtime"
)

// newTemplateCmd creates the template command group
func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage per-branch commit-message templates",
	}

	cmd.AddCommand(newTemplateSetCmd())
	cmd.AddCommand(newTemplateUnsetCmd())
	cmd.AddCommand(newTemplateListCmd())

	return cmd
}

// newTemplateSetCmd creates the template set command
func newTemplateSetCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "set [ticket]",
		Short: "Configure the commit template for a branch",
		Long: `Configure the commit template for a branch (the current branch by
default). The ticket number is validated against the configured format
and rendered into the template; when omitted, it is prompted for.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			opts := actions.SetTemplateOptions{Branch: branch}
			if len(args) > 0 {
				opts.Ticket = args[0]
			}
			return actions.SetTemplate(cmd.Context(), rt, opts)
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Branch to configure (defaults to the current branch)")

	return cmd
}

// newTemplateUnsetCmd creates the template unset command
func newTemplateUnsetCmd() *cobra.Command {
	var opts actions.UnsetTemplateOptions

	cmd := &cobra.Command{
		Use:          "unset",
		Short:        "Remove the commit template configuration for a branch",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			return actions.UnsetTemplate(cmd.Context(), rt, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch to clean up (defaults to the current branch)")
	cmd.Flags().BoolVar(&opts.KeepFile, "keep-file", false, "Keep the template file on disk")

	return cmd
}

// newTemplateListCmd creates the template list command
func newTemplateListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List branches with a configured commit template",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			configured, err := rt.Templates.ListConfigured(cmd.Context())
			if err != nil {
				return err
			}
			if len(configured) == 0 {
				rt.Splog.Info("No branches have a commit template configured")
				return nil
			}
			for _, branch := range configured {
				rt.Splog.Info("%s -> %s", branch.Branch, branch.TemplateFile)
			}
			return nil
		},
	}

	return cmd
}
