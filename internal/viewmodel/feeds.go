package viewmodel

import (
	"context"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/service"
)

// Home feed defaults.
const (
	HomePageSize       = 20
	MyArticlesPageSize = 100
)

// Home is the published-articles feed.
type Home struct {
	svc *service.Services

	Query model.ArticleQuery
	Page  model.Page[model.Article]
}

// NewHome creates the feed view model.
func NewHome(svc *service.Services) *Home {
	return &Home{svc: svc}
}

// Load fetches one page of published articles. Status is always
// "published"; page and page size default to 1 and HomePageSize.
func (h *Home) Load(ctx context.Context, q model.ArticleQuery) error {
	q.Status = model.StatusPublished
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = HomePageSize
	}
	page, err := h.svc.Articles.List(ctx, q)
	if err != nil {
		return err
	}
	h.Query, h.Page = q, page
	return nil
}

// MyArticles lists the viewer's own articles.
type MyArticles struct {
	svc    *service.Services
	viewer Viewer

	Status   model.ArticleStatus
	Articles []model.Article
}

// NewMyArticles creates the view model.
func NewMyArticles(svc *service.Services, viewer Viewer) *MyArticles {
	return &MyArticles{svc: svc, viewer: viewer}
}

// Load fetches articles authored by the viewer, optionally filtered by
// status (empty means all).
func (m *MyArticles) Load(ctx context.Context, status model.ArticleStatus) error {
	if err := requireLogin(m.viewer); err != nil {
		return err
	}
	if !m.viewer.CanManageArticles() {
		return ErrPermissionDenied
	}
	page, err := m.svc.Articles.List(ctx, model.ArticleQuery{
		Author:   m.viewer.User().Username,
		PageSize: MyArticlesPageSize,
		Status:   status,
	})
	if err != nil {
		return err
	}
	m.Status, m.Articles = status, page.Results
	return nil
}

// Publish publishes one of the loaded articles and updates it in place.
func (m *MyArticles) Publish(ctx context.Context, id int64) (model.Article, error) {
	if err := requireLogin(m.viewer); err != nil {
		return model.Article{}, err
	}
	a, err := m.svc.Articles.Publish(ctx, id)
	if err != nil {
		return model.Article{}, err
	}
	for i := range m.Articles {
		if m.Articles[i].ID == id {
			m.Articles[i] = a
		}
	}
	return a, nil
}

// Delete deletes an article and drops it from the list.
func (m *MyArticles) Delete(ctx context.Context, id int64) error {
	if err := requireLogin(m.viewer); err != nil {
		return err
	}
	if err := m.svc.Articles.Delete(ctx, id); err != nil {
		return err
	}
	kept := m.Articles[:0]
	for _, a := range m.Articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.Articles = kept
	return nil
}

// Bookmarks is the viewer's saved-articles list.
type Bookmarks struct {
	svc    *service.Services
	viewer Viewer

	Items []model.Bookmark
}

// NewBookmarks creates the view model.
func NewBookmarks(svc *service.Services, viewer Viewer) *Bookmarks {
	return &Bookmarks{svc: svc, viewer: viewer}
}

// Load fetches the bookmarks.
func (b *Bookmarks) Load(ctx context.Context) error {
	if err := requireLogin(b.viewer); err != nil {
		return err
	}
	items, err := b.svc.Bookmarks.List(ctx)
	if err != nil {
		return err
	}
	b.Items = items
	return nil
}

// Remove deletes a bookmark by id and drops it from the list.
func (b *Bookmarks) Remove(ctx context.Context, bookmarkID int64) error {
	if err := requireLogin(b.viewer); err != nil {
		return err
	}
	if err := b.svc.Bookmarks.Remove(ctx, bookmarkID); err != nil {
		return err
	}
	kept := b.Items[:0]
	for _, it := range b.Items {
		if it.ID != bookmarkID {
			kept = append(kept, it)
		}
	}
	b.Items = kept
	return nil
}
