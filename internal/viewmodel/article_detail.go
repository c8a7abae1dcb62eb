package viewmodel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/service"
)

// ArticleDetail is the single-article view: the article, its comment tree,
// and the viewer's bookmark and reaction.
type ArticleDetail struct {
	svc    *service.Services
	viewer Viewer
	logger *slog.Logger

	ID         int64           `json:"id"`
	Article    model.Article   `json:"article"`
	Comments   []model.Comment `json:"comments"`
	Bookmarked bool            `json:"bookmarked"`
	Reaction   *model.Reaction `json:"reaction"`
}

// NewArticleDetail creates the view model for article id. Call Load first.
func NewArticleDetail(svc *service.Services, viewer Viewer, logger *slog.Logger, id int64) *ArticleDetail {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleDetail{svc: svc, viewer: viewer, logger: logger, ID: id}
}

// Load fetches the article. Comments, bookmark status and the current
// reaction are loaded too; their failures are logged and leave defaults.
func (d *ArticleDetail) Load(ctx context.Context, withComments bool) error {
	a, err := d.svc.Articles.Get(ctx, d.ID)
	if err != nil {
		return err
	}
	d.Article = a

	if withComments {
		d.loadComments(ctx)
	}
	if !d.viewer.IsAuthenticated() {
		return nil
	}
	if ok, err := d.svc.Bookmarks.Check(ctx, d.ID); err != nil {
		d.logger.Warn("bookmark status unavailable", "article", d.ID, "error", err)
	} else {
		d.Bookmarked = ok
	}
	if r, err := d.svc.Reactions.ForArticle(ctx, d.ID); err != nil {
		d.logger.Warn("reaction unavailable", "article", d.ID, "error", err)
	} else {
		d.Reaction = r
	}
	return nil
}

func (d *ArticleDetail) loadComments(ctx context.Context) {
	comments, err := d.svc.Comments.List(ctx, d.ID)
	if err != nil {
		d.logger.Warn("comments unavailable", "article", d.ID, "error", err)
		return
	}
	d.Comments = model.BuildCommentTree(comments)
}

// React toggles the viewer's reaction. Repeating the current value removes
// it; any other value replaces it. The article is re-fetched afterwards so
// the counts are current. On failure the reaction state is unchanged.
func (d *ArticleDetail) React(ctx context.Context, value model.ReactionValue) error {
	if err := requireLogin(d.viewer); err != nil {
		return err
	}
	if !value.Valid() {
		return fmt.Errorf("invalid reaction value %d", int(value))
	}

	var next *model.Reaction
	if d.Reaction != nil && d.Reaction.Value == value {
		if err := d.svc.Reactions.Delete(ctx, d.ID, d.Reaction.ID); err != nil {
			return err
		}
	} else {
		r, err := d.svc.Reactions.Set(ctx, d.ID, value)
		if err != nil {
			return err
		}
		next = &r
	}
	d.Reaction = next

	a, err := d.svc.Articles.Get(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("refresh counts: %w", err)
	}
	d.Article = a
	return nil
}

// ReactionValue returns the viewer's current reaction, or 0.
func (d *ArticleDetail) ReactionValue() model.ReactionValue {
	if d.Reaction == nil {
		return 0
	}
	return d.Reaction.Value
}

// ToggleBookmark flips the bookmark and returns the new state. A known
// bookmark is deleted by id; otherwise the create-or-remove endpoint decides.
func (d *ArticleDetail) ToggleBookmark(ctx context.Context) (bool, error) {
	if err := requireLogin(d.viewer); err != nil {
		return false, err
	}

	if d.Bookmarked {
		bookmarks, err := d.svc.Bookmarks.List(ctx)
		if err != nil {
			return d.Bookmarked, err
		}
		if b, ok := model.FindBookmark(bookmarks, d.ID); ok {
			if err := d.svc.Bookmarks.Remove(ctx, b.ID); err != nil {
				return d.Bookmarked, err
			}
			d.Bookmarked = false
			return false, nil
		}
	}

	res, err := d.svc.Bookmarks.Toggle(ctx, d.ID)
	if err != nil {
		return d.Bookmarked, err
	}
	d.Bookmarked = res.Added
	return res.Added, nil
}

// AddComment posts a comment, or a reply when parent is set, and reloads
// the comment tree.
func (d *ArticleDetail) AddComment(ctx context.Context, content string, parent *int64) (model.Comment, error) {
	if err := requireLogin(d.viewer); err != nil {
		return model.Comment{}, err
	}
	c, err := d.svc.Comments.Create(ctx, d.ID, model.CommentInput{Content: content, Parent: parent})
	if err != nil {
		return model.Comment{}, err
	}
	d.Article.CommentsCount++
	d.loadComments(ctx)
	return c, nil
}

// DeleteComment removes a comment after checking the viewer may: authors
// may delete their own comments and moderators any. The comment must be in
// the loaded tree.
func (d *ArticleDetail) DeleteComment(ctx context.Context, commentID int64) error {
	if err := requireLogin(d.viewer); err != nil {
		return err
	}
	c, ok := findComment(d.Comments, commentID)
	if !ok {
		return fmt.Errorf("comment %d not found on article %d", commentID, d.ID)
	}
	if !model.CanDeleteComment(&c, d.viewer.User()) {
		return ErrPermissionDenied
	}
	if err := d.svc.Comments.Delete(ctx, d.ID, commentID); err != nil {
		return err
	}
	if d.Article.CommentsCount > 0 {
		d.Article.CommentsCount--
	}
	d.loadComments(ctx)
	return nil
}

// CanEdit reports whether the viewer may edit or delete the article: they
// must be able to manage articles and be its author.
func (d *ArticleDetail) CanEdit() bool {
	return d.viewer.CanManageArticles() && d.Article.IsAuthoredBy(d.viewer.User())
}

// Delete removes the article.
func (d *ArticleDetail) Delete(ctx context.Context) error {
	if err := requireLogin(d.viewer); err != nil {
		return err
	}
	if !d.CanEdit() {
		return ErrPermissionDenied
	}
	return d.svc.Articles.Delete(ctx, d.ID)
}

func findComment(tree []model.Comment, id int64) (model.Comment, bool) {
	for _, c := range tree {
		if c.ID == id {
			return c, true
		}
		if found, ok := findComment(c.Replies, id); ok {
			return found, true
		}
	}
	return model.Comment{}, false
}
