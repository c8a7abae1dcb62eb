package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/view"
)

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "categories",
		Short:         "List article categories",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				cats, err := a.svc.Articles.Categories(ctx)
				if err != nil {
					return err
				}
				return a.out.Render(cats, func(w io.Writer) { view.Categories(w, cats) })
			})
		},
	}
}

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tags",
		Short:         "List article tags",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				tags, err := a.svc.Articles.Tags(ctx)
				if err != nil {
					return err
				}
				return a.out.Render(tags, func(w io.Writer) { view.Tags(w, tags) })
			})
		},
	}
}

// NewRolesCommand creates the roles command.
func NewRolesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "roles",
		Short:         "List the account types open to registration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				roles := a.svc.Roles.Public(ctx)
				return a.out.Render(roles, func(w io.Writer) { view.Roles(w, roles) })
			})
		},
	}
}
