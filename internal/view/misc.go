package view

import (
	"fmt"
	"io"
	"time"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// Bookmarks renders saved articles with the bookmark id needed to remove them.
func Bookmarks(w io.Writer, items []model.Bookmark, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No bookmarks.")
		return
	}
	for _, b := range items {
		fmt.Fprintf(w, "[%d] #%d %s (saved %s)\n", b.ID, b.Article.ID, b.Article.Title, Ago(b.CreatedAt, now))
	}
}

// Categories renders the category list.
func Categories(w io.Writer, cats []model.Category) {
	for _, c := range cats {
		fmt.Fprintf(w, "#%d %s [%s]\n", c.ID, c.Name, c.Slug)
	}
}

// Tags renders the tag list.
func Tags(w io.Writer, tags []model.Tag) {
	for _, t := range tags {
		fmt.Fprintf(w, "#%d %s\n", t.ID, t.Name)
	}
}

// ValidationError lists a form's messages, one field per line.
func ValidationError(w io.Writer, v *viewmodel.ValidationError) {
	fmt.Fprintln(w, "Please fix the following:")
	if v.Message != "" {
		fmt.Fprintf(w, "  %s\n", v.Message)
	}
	for _, k := range v.FieldNames() {
		fmt.Fprintf(w, "  %s: %s\n", k, v.Fields[k])
	}
}
