package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func ids(comments []Comment) []int64 {
	out := make([]int64, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}

func TestBuildCommentTree_ServerReplies(t *testing.T) {
	reply := Comment{ID: 2, Article: 7, Parent: ptr(int64(1)), Content: "reply"}
	comments := []Comment{
		{ID: 1, Article: 7, Content: "root", Replies: []Comment{reply}},
		reply,
		{ID: 3, Article: 7, Content: "second root"},
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 2)
	assert.Equal(t, []int64{1, 3}, ids(tree))
	assert.Equal(t, []int64{2}, ids(tree[0].Replies))
	assert.Equal(t, 3, CountComments(tree))
}

func TestBuildCommentTree_AttachesByParent(t *testing.T) {
	comments := []Comment{
		{ID: 1, Article: 7},
		{ID: 2, Article: 7, Parent: ptr(int64(1))},
		{ID: 3, Article: 7, Parent: ptr(int64(1))},
		{ID: 4, Article: 7, Parent: ptr(int64(2))},
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 1)
	assert.Equal(t, []int64{2, 3}, ids(tree[0].Replies))
	assert.Equal(t, []int64{4}, ids(tree[0].Replies[0].Replies))
}

func TestBuildCommentTree_OrphanBecomesRoot(t *testing.T) {
	comments := []Comment{
		{ID: 5, Article: 7, Parent: ptr(int64(99))},
	}

	tree := BuildCommentTree(comments)

	assert.Equal(t, []int64{5}, ids(tree))
}

func TestBuildCommentTree_DropsCrossArticleReply(t *testing.T) {
	comments := []Comment{
		{ID: 1, Article: 7, Replies: []Comment{
			{ID: 2, Article: 8, Parent: ptr(int64(1))},
			{ID: 3, Article: 7, Parent: ptr(int64(1))},
		}},
	}

	tree := BuildCommentTree(comments)

	require.Len(t, tree, 1)
	assert.Equal(t, []int64{3}, ids(tree[0].Replies))
}

func TestBuildCommentTree_CycleTerminates(t *testing.T) {
	a := Comment{ID: 1, Article: 7}
	b := Comment{ID: 2, Article: 7, Parent: ptr(int64(1))}
	a.Replies = []Comment{b, {ID: 1, Article: 7}}

	tree := BuildCommentTree([]Comment{a, b})

	require.Len(t, tree, 1)
	assert.Equal(t, []int64{2}, ids(tree[0].Replies))
}

func TestBuildCommentTree_DoesNotMutateInput(t *testing.T) {
	comments := []Comment{
		{ID: 1, Article: 7},
		{ID: 2, Article: 7, Parent: ptr(int64(1))},
	}

	BuildCommentTree(comments)

	assert.Nil(t, comments[0].Replies)
}

func TestCanDeleteComment(t *testing.T) {
	comment := &Comment{ID: 1, Author: &CommentAuthor{ID: 10}}

	assert.True(t, CanDeleteComment(comment, &User{ID: 10}), "author")
	assert.False(t, CanDeleteComment(comment, &User{ID: 11}), "other reader")
	assert.True(t, CanDeleteComment(comment, &User{ID: 11, Role: &Role{Name: RoleAdmin}}), "moderator")
	assert.False(t, CanDeleteComment(comment, nil), "anonymous")
	assert.False(t, CanDeleteComment(&Comment{ID: 2}, &User{ID: 10}), "authorless comment")
}
