package cli

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	articleJSON = `{"id": 1, "title": "Hello", "status": "published", "content": "Body text.",
		"author": {"id": 2, "username": "ed"}, "likes_count": 3, "dislikes_count": 1, "comments_count": 1}`
	commentsJSON = `[{"id": 5, "article": 1, "author": {"id": 1, "username": "rita"}, "content": "Nice", "parent": null}]`
	categoriesJSON = `[{"id": 4, "name": "Technology", "slug": "tech"}]`
	tagsJSON       = `[{"id": 7, "name": "go", "slug": "go"}]`
)

func TestArticlesList(t *testing.T) {
	h := newHarness(t)
	h.fake.On("GET", "/articles/", 200, `{"count": 21, "next": "http://x/?page=2", "results": [`+articleJSON+`]}`)

	res := h.run(t, "", "articles", "list", "--search", "go", "--category", "tech")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "#1 Hello [published]")
	assert.Contains(t, res.stdout, "Page 1: 1 of 21 articles. Next: --page 2")

	calls := h.fake.Calls("GET", "/articles/")
	require.Len(t, calls, 1)
	q, err := url.ParseQuery(calls[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "published", q.Get("status"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "20", q.Get("page_size"))
	assert.Equal(t, "go", q.Get("search"))
	assert.Equal(t, "tech", q.Get("category"))
}

func TestArticlesList_JSON(t *testing.T) {
	h := newHarness(t)
	h.fake.On("GET", "/articles/", 200, `[`+articleJSON+`]`)

	res := h.run(t, "", "--format", "json", "articles", "list")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Count   int64 `json:"count"`
			Results []struct {
				Title string `json:"title"`
			} `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(1), resp.Data.Count)
	require.Len(t, resp.Data.Results, 1)
	assert.Equal(t, "Hello", resp.Data.Results[0].Title)
}

func TestArticlesShow(t *testing.T) {
	h := newHarness(t)
	h.fake.On("GET", "/articles/1/", 200, articleJSON)
	h.fake.On("GET", "/articles/1/comments/", 200, commentsJSON)

	res := h.run(t, "", "articles", "show", "1")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "Hello\n=====\n"), res.stdout)
	assert.Contains(t, res.stdout, "Body text.")
	assert.Contains(t, res.stdout, "Comments (1)")
	assert.Contains(t, res.stdout, "- rita, unknown time (#5)\n  Nice\n")

	// Anonymous viewers never ask for bookmark or reaction state.
	assert.Equal(t, []string{"GET /articles/1/", "GET /articles/1/comments/"}, h.fake.Routes())
}

func TestArticlesShow_NoComments(t *testing.T) {
	h := newHarness(t)
	h.fake.On("GET", "/articles/1/", 200, articleJSON)

	res := h.run(t, "", "articles", "show", "1", "--no-comments")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "Comments")
	assert.Zero(t, h.fake.Count("GET", "/articles/1/comments/"))
}

func TestArticlesShow_Errors(t *testing.T) {
	h := newHarness(t)

	res := h.run(t, "", "articles", "show", "99")
	assert.Equal(t, ExitFailure, res.code)
	assert.Equal(t, "Error [NOT_FOUND]: Not found.\n", res.stderr)

	res = h.run(t, "", "articles", "show", "abc")
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, `Error [USAGE]: invalid article id "abc"`)
}

func TestArticlesMine(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/articles/", 200, `[{"id": 3, "title": "Draft one", "status": "draft"}]`)

	res := h.run(t, "", "articles", "mine", "--status", "draft")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "#3     draft     Draft one")

	q, err := url.ParseQuery(h.fake.Calls("GET", "/articles/")[0].Query)
	require.NoError(t, err)
	assert.Equal(t, "ed", q.Get("author"))
	assert.Equal(t, "draft", q.Get("status"))
}

func TestArticlesMine_ReaderDenied(t *testing.T) {
	h := newHarness(t)
	h.login(t, reader)

	res := h.run(t, "", "articles", "mine")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "Error [FORBIDDEN]: permission denied")

	res = h.run(t, "", "articles", "mine", "--status", "deleted")
	assert.Equal(t, ExitCommandError, res.code)
}

func TestArticlesCreate_FromDraft(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/categories/", 200, categoriesJSON)
	h.fake.On("GET", "/tags/", 200, tagsJSON)
	h.fake.On("POST", "/articles/", 201, `{"id": 9, "title": "Fresh", "status": "draft"}`)

	path := h.writeFile(t, "fresh.yaml", "title: Fresh\nexcerpt: Short\ncontent: Long body\ncategory: tech\ntags: [go]\n")
	res := h.run(t, "", "articles", "create", "--file", path)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Created article #9 \"Fresh\" [draft].\n", res.stdout)

	calls := h.fake.Calls("POST", "/articles/")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Header.Get("Content-Type"), "multipart/form-data")
	body := string(calls[0].Body)
	assert.Contains(t, body, "Fresh")
	assert.Contains(t, body, "Long body")
	assert.Contains(t, body, `name="category"`)
	assert.Contains(t, body, `name="tags"`)
}

func TestArticlesCreate_Cover(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/categories/", 200, categoriesJSON)
	h.fake.On("GET", "/tags/", 200, tagsJSON)
	h.fake.On("POST", "/articles/", 201, `{"id": 9, "title": "Fresh", "status": "draft"}`)

	cover := h.writeFile(t, "cover.png", "PNGBYTES")
	path := h.writeFile(t, "fresh.cue", `title: "Fresh", excerpt: "Short", content: "Body"`)
	res := h.run(t, "", "articles", "create", "-f", path, "--cover", cover)
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	body := string(h.fake.Calls("POST", "/articles/")[0].Body)
	assert.Contains(t, body, `filename="cover.png"`)
	assert.Contains(t, body, "PNGBYTES")
}

func TestArticlesCreate_BadDraft(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)

	path := h.writeFile(t, "bad.yaml", "title: Fresh\nexcerpt: Short\ncontent: Body\nstatus: gone\n")
	res := h.run(t, "", "articles", "create", "--file", path)
	assert.Equal(t, ExitCommandError, res.code)
	assert.Contains(t, res.stderr, "Error [DRAFT]")
	assert.Zero(t, h.fake.Count("POST", "/articles/"))
}

func TestArticlesCreate_UnknownCategory(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/categories/", 200, categoriesJSON)
	h.fake.On("GET", "/tags/", 200, tagsJSON)

	path := h.writeFile(t, "a.yaml", "title: T\nexcerpt: E\ncontent: C\ncategory: sports\n")
	res := h.run(t, "", "articles", "create", "--file", path)
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, `  category: Unknown category "sports".`)
}

func TestArticlesCreate_ServerValidation(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/categories/", 200, categoriesJSON)
	h.fake.On("GET", "/tags/", 200, tagsJSON)
	h.fake.On("POST", "/articles/", 400, `{"title": ["Article with this title already exists."]}`)

	path := h.writeFile(t, "a.yaml", "title: T\nexcerpt: E\ncontent: C\n")
	res := h.run(t, "", "articles", "create", "--file", path)
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "Error [VALIDATION]: validation failed")
	assert.Contains(t, res.stderr, "  title: Article with this title already exists.")
}

func TestArticlesEdit(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/categories/", 200, categoriesJSON)
	h.fake.On("GET", "/tags/", 200, tagsJSON)
	h.fake.On("GET", "/articles/1/", 200, articleJSON)
	h.fake.On("PATCH", "/articles/1/", 200, `{"id": 1, "title": "Hello again", "status": "published"}`)

	path := h.writeFile(t, "a.yaml", "title: Hello again\nexcerpt: E\ncontent: C\nstatus: published\n")
	res := h.run(t, "", "articles", "edit", "1", "--file", path)
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Updated article #1 \"Hello again\" [published].\n", res.stdout)
	assert.Equal(t, 1, h.fake.Count("PATCH", "/articles/1/"))
}

func TestArticlesEdit_NotAuthor(t *testing.T) {
	h := newHarness(t)
	other := *editor
	other.ID, other.Username = 9, "someone"
	h.login(t, &other)
	h.fake.On("GET", "/categories/", 200, categoriesJSON)
	h.fake.On("GET", "/tags/", 200, tagsJSON)
	h.fake.On("GET", "/articles/1/", 200, articleJSON)

	path := h.writeFile(t, "a.yaml", "title: T\nexcerpt: E\ncontent: C\n")
	res := h.run(t, "", "articles", "edit", "1", "--file", path)
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "permission denied")
	assert.Zero(t, h.fake.Count("PATCH", "/articles/1/"))
}

func TestArticlesExport(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/categories/", 200, categoriesJSON)
	h.fake.On("GET", "/tags/", 200, tagsJSON)
	h.fake.On("GET", "/articles/1/", 200, articleJSON)

	res := h.run(t, "", "articles", "export", "1")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "title: Hello\n")
	assert.Contains(t, res.stdout, "status: published\n")
	assert.Contains(t, res.stdout, "content: Body text.\n")
}

func TestArticlesPublish(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("POST", "/articles/3/publish/", 200, `{"id": 3, "title": "Draft one", "status": "published"}`)

	res := h.run(t, "", "articles", "publish", "3")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Published article #3 \"Draft one\".\n", res.stdout)
}

func TestArticlesDelete(t *testing.T) {
	h := newHarness(t)
	h.login(t, editor)
	h.fake.On("GET", "/articles/1/", 200, articleJSON)
	h.fake.On("DELETE", "/articles/1/", 204, "")

	res := h.run(t, "n\n", "articles", "delete", "1")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, `Delete article #1 "Hello"? [y/N]: `)
	assert.Contains(t, res.stderr, "Error [ABORTED]: aborted")
	assert.Zero(t, h.fake.Count("DELETE", "/articles/1/"))

	res = h.run(t, "y\n", "articles", "delete", "1")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Deleted article #1.\n", res.stdout)

	res = h.run(t, "", "articles", "delete", "1", "--yes")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, 2, h.fake.Count("DELETE", "/articles/1/"))
}

func TestArticlesDelete_Anonymous(t *testing.T) {
	h := newHarness(t)
	h.fake.On("GET", "/articles/1/", 200, articleJSON)

	res := h.run(t, "", "articles", "delete", "1", "--yes")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "not logged in")
}
