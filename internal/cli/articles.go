package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/draft"
	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/view"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// NewArticlesCommand creates the articles command group.
func NewArticlesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "Browse, write and manage articles",
	}
	cmd.AddCommand(newArticlesListCommand(rootOpts))
	cmd.AddCommand(newArticlesShowCommand(rootOpts))
	cmd.AddCommand(newArticlesMineCommand(rootOpts))
	cmd.AddCommand(newArticlesWriteCommand(rootOpts, false))
	cmd.AddCommand(newArticlesWriteCommand(rootOpts, true))
	cmd.AddCommand(newArticlesExportCommand(rootOpts))
	cmd.AddCommand(newArticlesPublishCommand(rootOpts))
	cmd.AddCommand(newArticlesDeleteCommand(rootOpts))
	return cmd
}

// ArticlesListOptions holds flags for articles list.
type ArticlesListOptions struct {
	*RootOptions
	Query model.ArticleQuery
}

func newArticlesListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArticlesListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List published articles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticlesList(opts, cmd)
		},
	}

	q := &opts.Query
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "full-text search")
	cmd.Flags().StringVar(&q.Category, "category", "", "category slug")
	cmd.Flags().StringVar(&q.Tags, "tags", "", "comma-separated tag names")
	cmd.Flags().StringVar(&q.Author, "author", "", "author username")
	cmd.Flags().StringVar(&q.Ordering, "ordering", "", "sort field, prefix with - for descending (e.g. -published_at)")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PageSize, "page-size", viewmodel.HomePageSize, "articles per page")

	return cmd
}

func runArticlesList(opts *ArticlesListOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		home := viewmodel.NewHome(a.svc)
		if err := home.Load(ctx, opts.Query); err != nil {
			return err
		}
		return a.out.Render(home.Page, func(w io.Writer) {
			view.ArticleList(w, home.Page.Results, a.now())
			view.PageFooter(w, home.Page, home.Query.Page)
		})
	})
}

// ArticlesShowOptions holds flags for articles show.
type ArticlesShowOptions struct {
	*RootOptions
	NoComments bool
}

func newArticlesShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArticlesShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show an article with its comments",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticlesShow(opts, args[0], cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.NoComments, "no-comments", false, "skip the comment thread")
	return cmd
}

func runArticlesShow(opts *ArticlesShowOptions, arg string, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		d, err := loadDetail(ctx, a, arg, !opts.NoComments)
		if err != nil {
			return err
		}
		return a.out.Render(d, func(w io.Writer) {
			view.ArticleDetail(w, d, !opts.NoComments, a.now())
		})
	})
}

func loadDetail(ctx context.Context, a *app, arg string, withComments bool) (*viewmodel.ArticleDetail, error) {
	id, err := parseID("article", arg)
	if err != nil {
		return nil, err
	}
	d := viewmodel.NewArticleDetail(a.svc, a.sess, a.logger, id)
	if err := d.Load(ctx, withComments); err != nil {
		return nil, err
	}
	return d, nil
}

// ArticlesMineOptions holds flags for articles mine.
type ArticlesMineOptions struct {
	*RootOptions
	Status string
}

func newArticlesMineCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArticlesMineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "mine",
		Short:         "List your own articles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticlesMine(opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Status, "status", "", "draft, published or archived (default all)")
	return cmd
}

func runArticlesMine(opts *ArticlesMineOptions, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		var status model.ArticleStatus
		if opts.Status != "" {
			st, err := model.ParseArticleStatus(opts.Status)
			if err != nil {
				return WrapExitError(ExitCommandError, "status", err)
			}
			status = st
		}
		mine := viewmodel.NewMyArticles(a.svc, a.sess)
		if err := mine.Load(ctx, status); err != nil {
			return err
		}
		return a.out.Render(mine.Articles, func(w io.Writer) {
			view.MyArticles(w, mine.Articles, a.now())
		})
	})
}

// ArticleWriteOptions holds flags for articles create and edit.
type ArticleWriteOptions struct {
	*RootOptions
	File  string
	Cover string
}

func newArticlesWriteCommand(rootOpts *RootOptions, edit bool) *cobra.Command {
	opts := &ArticleWriteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an article from a draft file",
		Long: `Create an article from a CUE or YAML draft file.

A draft has title, excerpt and content, and optionally status (draft,
published or archived), category, tags and cover. Category and tags name
existing records by id, slug or name. See "pulse categories" and
"pulse tags".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticleWrite(opts, cmd, "")
		},
	}
	if edit {
		cmd.Use = "edit <id>"
		cmd.Short = "Replace an article's fields from a draft file"
		cmd.Long = `Replace an article's fields from a CUE or YAML draft file.

"pulse articles export <id>" writes the current fields as a draft to start
from. Only the article's author may edit it.`
		cmd.Args = cobra.ExactArgs(1)
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			return runArticleWrite(opts, cmd, args[0])
		}
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "draft file (.cue, .yaml or .yml)")
	cmd.Flags().StringVar(&opts.Cover, "cover", "", "cover image file (overrides the draft)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runArticleWrite(opts *ArticleWriteOptions, cmd *cobra.Command, idArg string) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		var editID int64
		if idArg != "" {
			id, err := parseID("article", idArg)
			if err != nil {
				return err
			}
			editID = id
		}

		d, err := draft.Load(opts.File)
		if err != nil {
			return err
		}
		fields, err := d.Fields()
		if err != nil {
			return WrapExitError(ExitCommandError, "cover", err)
		}
		if opts.Cover != "" {
			if fields.Cover, err = draft.ReadFile(opts.Cover); err != nil {
				return WrapExitError(ExitCommandError, "cover", err)
			}
		}

		form := viewmodel.NewArticleForm(a.svc, a.sess, editID)
		if err := form.Load(ctx); err != nil {
			return err
		}
		saved, err := form.Submit(ctx, fields)
		if err != nil {
			return err
		}

		verb := "Created"
		if editID != 0 {
			verb = "Updated"
		}
		return a.out.Render(saved, func(w io.Writer) {
			fmt.Fprintf(w, "%s article #%d %q [%s].\n", verb, saved.ID, saved.Title, saved.Status)
		})
	})
}

// ArticlesExportOptions holds flags for articles export.
type ArticlesExportOptions struct {
	*RootOptions
	Output string
}

func newArticlesExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArticlesExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "export <id>",
		Short:         "Write one of your articles as a YAML draft",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticlesExport(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runArticlesExport(opts *ArticlesExportOptions, arg string, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		id, err := parseID("article", arg)
		if err != nil {
			return err
		}
		form := viewmodel.NewArticleForm(a.svc, a.sess, id)
		if err := form.Load(ctx); err != nil {
			return err
		}
		data, err := draft.Export(form.Fields())
		if err != nil {
			return err
		}
		if opts.Output == "" {
			_, err := a.out.Writer.Write(data)
			return err
		}
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "write draft", err)
		}
		a.out.VerboseLog("wrote %s", opts.Output)
		return nil
	})
}

func newArticlesPublishCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "publish <id>",
		Short:         "Publish one of your articles",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				id, err := parseID("article", args[0])
				if err != nil {
					return err
				}
				art, err := viewmodel.NewMyArticles(a.svc, a.sess).Publish(ctx, id)
				if err != nil {
					return err
				}
				return a.out.Render(art, func(w io.Writer) {
					fmt.Fprintf(w, "Published article #%d %q.\n", art.ID, art.Title)
				})
			})
		},
	}
}

// DeleteOptions holds the confirmation flag of delete commands.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

func newArticlesDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete one of your articles",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticlesDelete(opts, args[0], cmd)
		},
	}
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runArticlesDelete(opts *DeleteOptions, arg string, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		d, err := loadDetail(ctx, a, arg, false)
		if err != nil {
			return err
		}
		if !d.CanEdit() {
			if !a.sess.IsAuthenticated() {
				return viewmodel.ErrLoginRequired
			}
			return viewmodel.ErrPermissionDenied
		}
		if !opts.Yes && !a.prompt.confirm(fmt.Sprintf("Delete article #%d %q?", d.ID, d.Article.Title)) {
			return errAborted
		}
		if err := d.Delete(ctx); err != nil {
			return err
		}
		return a.out.Render(map[string]int64{"deleted": d.ID}, func(w io.Writer) {
			fmt.Fprintf(w, "Deleted article #%d.\n", d.ID)
		})
	})
}
