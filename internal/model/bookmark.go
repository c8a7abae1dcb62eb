package model

import "time"

// Bookmark is a saved reference from a user to an article.
type Bookmark struct {
	ID        int64     `json:"id"`
	Article   Article   `json:"article"`
	User      int64     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// FindBookmark returns the bookmark for articleID, if any.
func FindBookmark(bookmarks []Bookmark, articleID int64) (Bookmark, bool) {
	for _, b := range bookmarks {
		if b.Article.ID == articleID {
			return b, true
		}
	}
	return Bookmark{}, false
}
