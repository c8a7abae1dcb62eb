package service

import (
	"context"
	"fmt"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
)

// BookmarkRemovedDetail is the error detail the server answers a create with
// when it removed an existing bookmark instead.
const BookmarkRemovedDetail = "Bookmark removed"

// ToggleResult is the outcome of BookmarkService.Toggle.
type ToggleResult struct {
	Added    bool
	Bookmark *model.Bookmark
}

// BookmarkService covers /bookmarks/.
type BookmarkService struct {
	r Requester
}

// List returns the current user's bookmarks. Paginated and bare-array
// responses are both accepted.
func (s *BookmarkService) List(ctx context.Context) ([]model.Bookmark, error) {
	var page model.Page[model.Bookmark]
	if err := s.r.Get(ctx, "/bookmarks/", nil, &page); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return page.Results, nil
}

// Check reports whether the article is bookmarked.
func (s *BookmarkService) Check(ctx context.Context, articleID int64) (bool, error) {
	var out struct {
		IsBookmarked bool `json:"is_bookmarked"`
	}
	query := map[string]string{"article_id": fmt.Sprint(articleID)}
	if err := s.r.Get(ctx, "/bookmarks/check/", query, &out); err != nil {
		return false, fmt.Errorf("check bookmark for article %d: %w", articleID, err)
	}
	return out.IsBookmarked, nil
}

// Add bookmarks the article.
func (s *BookmarkService) Add(ctx context.Context, articleID int64) (model.Bookmark, error) {
	body := struct {
		ArticleID int64 `json:"article_id"`
	}{articleID}

	var b model.Bookmark
	if err := s.r.Post(ctx, "/bookmarks/", body, &b); err != nil {
		return model.Bookmark{}, fmt.Errorf("add bookmark for article %d: %w", articleID, err)
	}
	return b, nil
}

// Remove deletes a bookmark by its own id.
func (s *BookmarkService) Remove(ctx context.Context, bookmarkID int64) error {
	if err := s.r.Delete(ctx, path("/bookmarks/%d/", bookmarkID)); err != nil {
		return fmt.Errorf("remove bookmark %d: %w", bookmarkID, err)
	}
	return nil
}

// Toggle attempts to add a bookmark. A "Bookmark removed" error is read as
// the server having toggled an existing bookmark off.
func (s *BookmarkService) Toggle(ctx context.Context, articleID int64) (ToggleResult, error) {
	b, err := s.Add(ctx, articleID)
	if api.DetailIs(err, BookmarkRemovedDetail) {
		return ToggleResult{Added: false}, nil
	}
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Added: true, Bookmark: &b}, nil
}
