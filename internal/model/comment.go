package model

import "time"

// CommentAuthor is the compact user record embedded in comments.
type CommentAuthor struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Comment is a remark on an article. Parent, when set, names another
// comment on the same article; Replies is materialized by the server.
type Comment struct {
	ID        int64          `json:"id"`
	Article   int64          `json:"article"`
	Author    *CommentAuthor `json:"author"`
	Parent    *int64         `json:"parent"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
	IsActive  bool           `json:"is_active"`
	Replies   []Comment      `json:"replies,omitempty"`
}

// AuthorName returns the display name of the comment's author.
func (c *Comment) AuthorName() string {
	if c.Author == nil {
		return "deleted user"
	}
	if c.Author.FullName != "" {
		return c.Author.FullName
	}
	return c.Author.Username
}

// CommentInput is the body of POST /articles/{id}/comments/.
type CommentInput struct {
	Content string `json:"content"`
	Parent  *int64 `json:"parent,omitempty"`
}

// CanDeleteComment reports whether u may delete c: authors may delete their
// own comments and moderators may delete any.
func CanDeleteComment(c *Comment, u *User) bool {
	if c == nil || u == nil {
		return false
	}
	if u.CanModerateContent() {
		return true
	}
	return c.Author != nil && c.Author.ID == u.ID
}

// BuildCommentTree shapes the list returned by the comments endpoint into
// root comments with their replies.
//
// The endpoint returns every comment of the article, replies included, and
// each entry carries its own nested replies. Roots are entries without a
// parent or whose parent is absent from the list. A root keeps the replies
// the server materialized; when it has none they are attached from the list
// by parent id. Replies on a different article than their parent are
// dropped, and each comment is emitted at most once.
//
// The input is not modified. Order follows the input.
func BuildCommentTree(comments []Comment) []Comment {
	present := make(map[int64]bool, len(comments))
	children := make(map[int64][]Comment)
	for _, c := range comments {
		present[c.ID] = true
	}
	for _, c := range comments {
		if c.Parent != nil && present[*c.Parent] {
			children[*c.Parent] = append(children[*c.Parent], c)
		}
	}

	seen := make(map[int64]bool, len(comments))
	roots := make([]Comment, 0, len(comments))
	for _, c := range comments {
		if c.Parent != nil && present[*c.Parent] {
			continue
		}
		if seen[c.ID] {
			continue
		}
		roots = append(roots, shapeComment(c, children, seen))
	}
	return roots
}

func shapeComment(c Comment, children map[int64][]Comment, seen map[int64]bool) Comment {
	seen[c.ID] = true
	replies := c.Replies
	if len(replies) == 0 {
		replies = children[c.ID]
	}
	out := c
	out.Replies = nil
	for _, r := range replies {
		if seen[r.ID] || !sameArticle(c, r) {
			continue
		}
		out.Replies = append(out.Replies, shapeComment(r, children, seen))
	}
	return out
}

// sameArticle treats a missing article id as matching; nested replies from
// older API versions omit it.
func sameArticle(parent, reply Comment) bool {
	return parent.Article == 0 || reply.Article == 0 || parent.Article == reply.Article
}

// CountComments returns the number of comments in a tree, replies included.
func CountComments(tree []Comment) int {
	n := 0
	for _, c := range tree {
		n += 1 + CountComments(c.Replies)
	}
	return n
}
