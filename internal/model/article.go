package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// ArticleStatuses lists the valid statuses in display order.
var ArticleStatuses = []ArticleStatus{StatusDraft, StatusPublished, StatusArchived}

// Valid reports whether s is one of the known statuses.
func (s ArticleStatus) Valid() bool {
	for _, v := range ArticleStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ParseArticleStatus converts a user-supplied string to a status.
func ParseArticleStatus(s string) (ArticleStatus, error) {
	st := ArticleStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown article status %q: must be one of %v", s, ArticleStatuses)
	}
	return st, nil
}

// Author is the compact user record embedded in articles.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

// Name returns the full name or the username.
func (a *Author) Name() string {
	if a == nil {
		return "unknown"
	}
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

// Category groups articles by topic.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Tag labels an article.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Article is a publishable content unit.
type Article struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug,omitempty"`
	Content       string        `json:"content,omitempty"`
	Excerpt       string        `json:"excerpt,omitempty"`
	CoverImage    string        `json:"cover_image,omitempty"`
	Author        *Author       `json:"author"`
	Category      *Category     `json:"category"`
	Tags          []Tag         `json:"tags"`
	Status        ArticleStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
	Views         int64         `json:"views"`
	SourceURL     string        `json:"source_url,omitempty"`
	LikesCount    int64         `json:"likes_count"`
	DislikesCount int64         `json:"dislikes_count"`
	CommentsCount int64         `json:"comments_count"`
}

// UnmarshalJSON accepts both comments_count (detail) and comment_count
// (list serializer) for the comment aggregate.
func (a *Article) UnmarshalJSON(data []byte) error {
	type plain Article
	aux := struct {
		*plain
		CommentCount *int64 `json:"comment_count"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CommentCount != nil && a.CommentsCount == 0 {
		a.CommentsCount = *aux.CommentCount
	}
	return nil
}

// IsAuthoredBy reports whether the user wrote the article.
func (a *Article) IsAuthoredBy(u *User) bool {
	return a != nil && u != nil && a.Author != nil && a.Author.ID == u.ID
}

// TagNames returns the tag names in API order.
func (a *Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}

// ArticleInput is the authoring form for create and update.
//
// For updates, zero-valued optional fields are left out of the request:
// strings are sent only when non-nil, and tags only when Tags is
// non-empty. A multipart form cannot carry an empty list, so tags cannot
// be cleared through it; an empty slice leaves them unchanged.
type ArticleInput struct {
	Title      *string
	Content    *string
	Excerpt    *string
	Status     *ArticleStatus
	Category   *int64
	Tags       []int64
	CoverImage *File
}

// ArticleQuery filters the article list.
type ArticleQuery struct {
	Page     int
	PageSize int
	Search   string
	Category string
	Tags     string
	Author   string
	Status   ArticleStatus
	Ordering string
}

// Params returns the query string parameters for the list endpoint.
func (q ArticleQuery) Params() map[string]string {
	p := map[string]string{}
	if q.Page > 0 {
		p["page"] = fmt.Sprint(q.Page)
	}
	if q.PageSize > 0 {
		p["page_size"] = fmt.Sprint(q.PageSize)
	}
	set := func(k, v string) {
		if v != "" {
			p[k] = v
		}
	}
	set("search", q.Search)
	set("category", q.Category)
	set("tags", q.Tags)
	set("author", q.Author)
	set("status", string(q.Status))
	set("ordering", q.Ordering)
	return p
}
