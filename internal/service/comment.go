package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dooralove/PulseNews/internal/model"
)

// ErrEmptyComment is returned when the normalized comment body is empty.
var ErrEmptyComment = errors.New("comment content is empty")

// CommentService covers /articles/{id}/comments/.
type CommentService struct {
	r Requester
}

// List returns every comment on the article, replies included, in API order.
func (s *CommentService) List(ctx context.Context, articleID int64) ([]model.Comment, error) {
	var page model.Page[model.Comment]
	if err := s.r.Get(ctx, path("/articles/%d/comments/", articleID), nil, &page); err != nil {
		return nil, fmt.Errorf("list comments for article %d: %w", articleID, err)
	}
	return page.Results, nil
}

// Create posts a comment or, when in.Parent is set, a reply.
func (s *CommentService) Create(ctx context.Context, articleID int64, in model.CommentInput) (model.Comment, error) {
	in.Content = model.NormalizeText(in.Content)
	if in.Content == "" {
		return model.Comment{}, ErrEmptyComment
	}
	var c model.Comment
	if err := s.r.Post(ctx, path("/articles/%d/comments/", articleID), in, &c); err != nil {
		return model.Comment{}, fmt.Errorf("create comment on article %d: %w", articleID, err)
	}
	return c, nil
}

// Delete removes a comment through the nested article route.
func (s *CommentService) Delete(ctx context.Context, articleID, commentID int64) error {
	if err := s.r.Delete(ctx, path("/articles/%d/comments/%d/", articleID, commentID)); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return nil
}
