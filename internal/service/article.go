package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
)

// ArticleService covers /articles/, /categories/ and /tags/.
type ArticleService struct {
	r Requester
}

// List returns one page of articles matching q.
func (s *ArticleService) List(ctx context.Context, q model.ArticleQuery) (model.Page[model.Article], error) {
	var page model.Page[model.Article]
	if err := s.r.Get(ctx, "/articles/", q.Params(), &page); err != nil {
		return model.Page[model.Article]{}, fmt.Errorf("list articles: %w", err)
	}
	return page, nil
}

// Get fetches one article.
func (s *ArticleService) Get(ctx context.Context, id int64) (model.Article, error) {
	var a model.Article
	if err := s.r.Get(ctx, path("/articles/%d/", id), nil, &a); err != nil {
		return model.Article{}, fmt.Errorf("get article %d: %w", id, err)
	}
	return a, nil
}

// Create submits a new article as multipart form data. Title, content,
// excerpt and status are always sent; status defaults to draft.
func (s *ArticleService) Create(ctx context.Context, in model.ArticleInput) (model.Article, error) {
	form := api.NewForm()
	form.Add("title", deref(in.Title))
	form.Add("content", deref(in.Content))
	form.Add("excerpt", deref(in.Excerpt))
	status := model.StatusDraft
	if in.Status != nil {
		status = *in.Status
	}
	form.Add("status", string(status))
	addOptional(form, in)

	var a model.Article
	if err := s.r.PostForm(ctx, "/articles/", form, &a); err != nil {
		return model.Article{}, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// Update patches only the fields set on in.
func (s *ArticleService) Update(ctx context.Context, id int64, in model.ArticleInput) (model.Article, error) {
	form := api.NewForm()
	if in.Title != nil {
		form.Add("title", *in.Title)
	}
	if in.Content != nil {
		form.Add("content", *in.Content)
	}
	if in.Excerpt != nil {
		form.Add("excerpt", *in.Excerpt)
	}
	if in.Status != nil {
		form.Add("status", string(*in.Status))
	}
	addOptional(form, in)

	var a model.Article
	if err := s.r.PatchForm(ctx, path("/articles/%d/", id), form, &a); err != nil {
		return model.Article{}, fmt.Errorf("update article %d: %w", id, err)
	}
	return a, nil
}

func addOptional(form *api.Form, in model.ArticleInput) {
	if in.Category != nil {
		form.Add("category", strconv.FormatInt(*in.Category, 10))
	}
	for _, tag := range in.Tags {
		form.Add("tags", strconv.FormatInt(tag, 10))
	}
	if in.CoverImage != nil {
		form.AddFile("cover_image", *in.CoverImage)
	}
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, path("/articles/%d/", id)); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

// Publish moves an article to the published status.
func (s *ArticleService) Publish(ctx context.Context, id int64) (model.Article, error) {
	var a model.Article
	if err := s.r.Post(ctx, path("/articles/%d/publish/", id), nil, &a); err != nil {
		return model.Article{}, fmt.Errorf("publish article %d: %w", id, err)
	}
	return a, nil
}

// Categories lists all categories.
func (s *ArticleService) Categories(ctx context.Context) ([]model.Category, error) {
	var page model.Page[model.Category]
	if err := s.r.Get(ctx, "/categories/", nil, &page); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return page.Results, nil
}

// Tags lists all tags.
func (s *ArticleService) Tags(ctx context.Context) ([]model.Tag, error) {
	var page model.Page[model.Tag]
	if err := s.r.Get(ctx, "/tags/", nil, &page); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return page.Results, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
