package view

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// Ago formats t relative to now.
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func articleTime(a model.Article) time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

func byline(a model.Article, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "by %s", a.Author.Name())
	if a.Category != nil {
		fmt.Fprintf(&b, " in %s", a.Category.Name)
	}
	fmt.Fprintf(&b, ", %s", Ago(articleTime(a), now))
	return b.String()
}

func stats(a model.Article) string {
	return fmt.Sprintf("%s views  +%d -%d  %s",
		humanize.Comma(a.Views), a.LikesCount, a.DislikesCount, plural(a.CommentsCount, "comment"))
}

func plural(n int64, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(n), word)
}

// ArticleList renders a list of article summaries separated by blank lines.
func ArticleList(w io.Writer, articles []model.Article, now time.Time) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles.")
		return
	}
	for i, a := range articles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "#%d %s [%s]\n", a.ID, a.Title, a.Status)
		fmt.Fprintf(w, "   %s\n", byline(a, now))
		fmt.Fprintf(w, "   %s\n", stats(a))
		if len(a.Tags) > 0 {
			fmt.Fprintf(w, "   tags: %s\n", strings.Join(a.TagNames(), ", "))
		}
		if a.Excerpt != "" {
			fmt.Fprintf(w, "   %s\n", a.Excerpt)
		}
	}
}

// PageFooter summarizes where a page sits in the result set.
func PageFooter(w io.Writer, page model.Page[model.Article], number int) {
	fmt.Fprintf(w, "\nPage %d: %d of %s.", number, len(page.Results), plural(page.Count, "article"))
	if page.HasNext() {
		fmt.Fprintf(w, " Next: --page %d", number+1)
	}
	fmt.Fprintln(w)
}

// ArticleDetail renders the full article and, optionally, its comments.
func ArticleDetail(w io.Writer, d *viewmodel.ArticleDetail, showComments bool, now time.Time) {
	a := d.Article
	fmt.Fprintln(w, a.Title)
	fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(a.Title)))
	fmt.Fprintf(w, "%s [%s]\n", byline(a, now), a.Status)
	if len(a.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(a.TagNames(), ", "))
	}
	fmt.Fprintln(w, stats(a))

	var marks []string
	switch d.ReactionValue() {
	case model.Like:
		marks = append(marks, "you liked this")
	case model.Dislike:
		marks = append(marks, "you disliked this")
	}
	if d.Bookmarked {
		marks = append(marks, "bookmarked")
	}
	if len(marks) > 0 {
		fmt.Fprintf(w, "(%s)\n", strings.Join(marks, ", "))
	}
	if a.SourceURL != "" {
		fmt.Fprintf(w, "source: %s\n", a.SourceURL)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimRight(a.Content, "\n"))

	if !showComments {
		return
	}
	fmt.Fprintln(w)
	heading := fmt.Sprintf("Comments (%d)", model.CountComments(d.Comments))
	fmt.Fprintln(w, heading)
	fmt.Fprintln(w, strings.Repeat("-", len(heading)))
	CommentTree(w, d.Comments, now)
}

// MyArticles renders the author's articles as a compact table-like list.
func MyArticles(w io.Writer, articles []model.Article, now time.Time) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "You have no articles yet.")
		return
	}
	for _, a := range articles {
		fmt.Fprintf(w, "#%-5d %-9s %s (updated %s)\n", a.ID, a.Status, a.Title, Ago(updatedAt(a), now))
	}
}

func updatedAt(a model.Article) time.Time {
	if a.UpdatedAt != nil {
		return *a.UpdatedAt
	}
	return a.CreatedAt
}
