package service

import (
	"context"
	"fmt"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
)

// ReactionService covers /reactions/ and /articles/{id}/reactions/.
type ReactionService struct {
	r Requester
}

// Mine lists the current user's reactions across all articles.
func (s *ReactionService) Mine(ctx context.Context) ([]model.Reaction, error) {
	var page model.Page[model.Reaction]
	if err := s.r.Get(ctx, "/reactions/", nil, &page); err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	return page.Results, nil
}

// ForArticle returns the current user's reaction to the article, or nil when
// there is none.
func (s *ReactionService) ForArticle(ctx context.Context, articleID int64) (*model.Reaction, error) {
	var r model.Reaction
	err := s.r.Get(ctx, path("/articles/%d/reactions/my_reaction/", articleID), nil, &r)
	if api.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reaction for article %d: %w", articleID, err)
	}
	return &r, nil
}

// Set creates the reaction or replaces its value.
func (s *ReactionService) Set(ctx context.Context, articleID int64, value model.ReactionValue) (model.Reaction, error) {
	if !value.Valid() {
		return model.Reaction{}, fmt.Errorf("invalid reaction value %d: must be 1 or -1", int(value))
	}
	body := struct {
		Value model.ReactionValue `json:"value"`
	}{value}

	var r model.Reaction
	if err := s.r.Post(ctx, path("/articles/%d/reactions/", articleID), body, &r); err != nil {
		return model.Reaction{}, fmt.Errorf("set reaction on article %d: %w", articleID, err)
	}
	return r, nil
}

// Delete removes a reaction by id.
func (s *ReactionService) Delete(ctx context.Context, articleID, reactionID int64) error {
	if err := s.r.Delete(ctx, path("/articles/%d/reactions/%d/", articleID, reactionID)); err != nil {
		return fmt.Errorf("delete reaction %d: %w", reactionID, err)
	}
	return nil
}

// Remove deletes the current user's reaction to the article, if any.
func (s *ReactionService) Remove(ctx context.Context, articleID int64) error {
	r, err := s.ForArticle(ctx, articleID)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	return s.Delete(ctx, articleID, r.ID)
}
