package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/view"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// NewBookmarksCommand creates the bookmarks command group.
func NewBookmarksCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bookmark"},
		Short:   "Manage saved articles",
	}
	cmd.AddCommand(newBookmarksListCommand(rootOpts))
	cmd.AddCommand(newBookmarksToggleCommand(rootOpts))
	cmd.AddCommand(newBookmarksRemoveCommand(rootOpts))
	cmd.AddCommand(newBookmarksCheckCommand(rootOpts))
	return cmd
}

func newBookmarksListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List your bookmarks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				b := viewmodel.NewBookmarks(a.svc, a.sess)
				if err := b.Load(ctx); err != nil {
					return err
				}
				return a.out.Render(b.Items, func(w io.Writer) {
					view.Bookmarks(w, b.Items, a.now())
				})
			})
		},
	}
}

func newBookmarksToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "toggle <article-id>",
		Short:         "Bookmark an article, or remove its bookmark",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				if !a.sess.IsAuthenticated() {
					return viewmodel.ErrLoginRequired
				}
				d, err := loadDetail(ctx, a, args[0], false)
				if err != nil {
					return err
				}
				added, err := d.ToggleBookmark(ctx)
				if err != nil {
					return err
				}
				return a.out.Render(map[string]any{"article": d.ID, "bookmarked": added}, func(w io.Writer) {
					if added {
						fmt.Fprintf(w, "Bookmarked #%d %q.\n", d.ID, d.Article.Title)
					} else {
						fmt.Fprintf(w, "Removed bookmark for #%d %q.\n", d.ID, d.Article.Title)
					}
				})
			})
		},
	}
}

func newBookmarksRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "remove <bookmark-id>",
		Short:         "Remove a bookmark by its id",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				id, err := parseID("bookmark", args[0])
				if err != nil {
					return err
				}
				if err := viewmodel.NewBookmarks(a.svc, a.sess).Remove(ctx, id); err != nil {
					return err
				}
				return a.out.Render(map[string]int64{"removed": id}, func(w io.Writer) {
					fmt.Fprintf(w, "Removed bookmark [%d].\n", id)
				})
			})
		},
	}
}

func newBookmarksCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "check <article-id>",
		Short:         "Report whether an article is bookmarked",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				id, err := parseID("article", args[0])
				if err != nil {
					return err
				}
				if !a.sess.IsAuthenticated() {
					return viewmodel.ErrLoginRequired
				}
				ok, err := a.svc.Bookmarks.Check(ctx, id)
				if err != nil {
					return err
				}
				return a.out.Render(map[string]any{"article": id, "bookmarked": ok}, func(w io.Writer) {
					if ok {
						fmt.Fprintf(w, "Article #%d is bookmarked.\n", id)
					} else {
						fmt.Fprintf(w, "Article #%d is not bookmarked.\n", id)
					}
				})
			})
		},
	}
}
