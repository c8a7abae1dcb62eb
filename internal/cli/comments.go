package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/service"
	"github.com/Dooralove/PulseNews/internal/view"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// NewCommentsCommand creates the comments command group.
func NewCommentsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comments",
		Aliases: []string{"comment"},
		Short:   "Read and write comments",
	}
	cmd.AddCommand(newCommentsListCommand(rootOpts))
	cmd.AddCommand(newCommentsAddCommand(rootOpts))
	cmd.AddCommand(newCommentsDeleteCommand(rootOpts))
	return cmd
}

func newCommentsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list <article-id>",
		Short:         "Show an article's comment thread",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd, func(ctx context.Context, a *app) error {
				id, err := parseID("article", args[0])
				if err != nil {
					return err
				}
				comments, err := a.svc.Comments.List(ctx, id)
				if err != nil {
					return err
				}
				tree := model.BuildCommentTree(comments)
				return a.out.Render(tree, func(w io.Writer) {
					view.CommentTree(w, tree, a.now())
				})
			})
		},
	}
}

// CommentAddOptions holds flags for comments add.
type CommentAddOptions struct {
	*RootOptions
	Parent int64
}

func newCommentsAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CommentAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "add <article-id> <text>...",
		Short:         "Comment on an article, or reply with --parent",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsAdd(opts, args, cmd)
		},
	}
	cmd.Flags().Int64Var(&opts.Parent, "parent", 0, "id of the comment to reply to")
	return cmd
}

func runCommentsAdd(opts *CommentAddOptions, args []string, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		id, err := parseID("article", args[0])
		if err != nil {
			return err
		}
		var parent *int64
		if opts.Parent != 0 {
			parent = &opts.Parent
		}

		d := viewmodel.NewArticleDetail(a.svc, a.sess, a.logger, id)
		c, err := d.AddComment(ctx, strings.Join(args[1:], " "), parent)
		if errors.Is(err, service.ErrEmptyComment) {
			return WrapExitError(ExitCommandError, "comment", err)
		}
		if err != nil {
			return err
		}
		return a.out.Render(c, func(w io.Writer) {
			fmt.Fprintf(w, "Posted comment #%d on article #%d.\n", c.ID, id)
		})
	})
}

func newCommentsDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <article-id> <comment-id>",
		Short: "Delete a comment",
		Long: `Delete a comment. Authors may delete their own comments; moderators
may delete any.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentsDelete(opts, args, cmd)
		},
	}
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runCommentsDelete(opts *DeleteOptions, args []string, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		commentID, err := parseID("comment", args[1])
		if err != nil {
			return err
		}
		if !a.sess.IsAuthenticated() {
			return viewmodel.ErrLoginRequired
		}
		d, err := loadDetail(ctx, a, args[0], true)
		if err != nil {
			return err
		}
		if !opts.Yes && !a.prompt.confirm(fmt.Sprintf("Delete comment #%d?", commentID)) {
			return errAborted
		}
		if err := d.DeleteComment(ctx, commentID); err != nil {
			return err
		}
		return a.out.Render(map[string]int64{"deleted": commentID}, func(w io.Writer) {
			fmt.Fprintf(w, "Deleted comment #%d.\n", commentID)
		})
	})
}

// NewReactCommand creates the react command.
func NewReactCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "react like|dislike <article-id>",
		Short: "Like or dislike an article",
		Long: `Like or dislike an article. Repeating your current reaction removes it;
the other value replaces it.`,
		Args:          cobra.ExactArgs(2),
		ValidArgs:     []string{"like", "dislike"},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReact(rootOpts, args, cmd)
		},
	}
}

func runReact(opts *RootOptions, args []string, cmd *cobra.Command) error {
	return opts.run(cmd, func(ctx context.Context, a *app) error {
		value, err := model.ParseReactionValue(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "react", err)
		}
		if !a.sess.IsAuthenticated() {
			return viewmodel.ErrLoginRequired
		}
		d, err := loadDetail(ctx, a, args[1], false)
		if err != nil {
			return err
		}
		if err := d.React(ctx, value); err != nil {
			return err
		}

		art := d.Article
		result := map[string]any{
			"article":  art.ID,
			"reaction": reactionName(d.ReactionValue()),
			"likes":    art.LikesCount,
			"dislikes": art.DislikesCount,
		}
		return a.out.Render(result, func(w io.Writer) {
			switch d.ReactionValue() {
			case model.Like:
				fmt.Fprint(w, "You like this article.")
			case model.Dislike:
				fmt.Fprint(w, "You dislike this article.")
			default:
				fmt.Fprint(w, "Reaction removed.")
			}
			fmt.Fprintf(w, " (%d likes, %d dislikes)\n", art.LikesCount, art.DislikesCount)
		})
	})
}

func reactionName(v model.ReactionValue) string {
	if !v.Valid() {
		return "none"
	}
	return v.String()
}
