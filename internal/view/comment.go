package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dooralove/PulseNews/internal/model"
)

// CommentTree renders root comments and their replies depth-first, two
// spaces of indentation per level.
func CommentTree(w io.Writer, roots []model.Comment, now time.Time) {
	if len(roots) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}
	for _, c := range roots {
		writeComment(w, c, 0, now)
	}
}

func writeComment(w io.Writer, c model.Comment, depth int, now time.Time) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s- %s, %s (#%d)\n", indent, c.AuthorName(), Ago(c.CreatedAt, now), c.ID)
	for _, line := range strings.Split(strings.TrimRight(c.Content, "\n"), "\n") {
		fmt.Fprintf(w, "%s  %s\n", indent, line)
	}
	for _, r := range c.Replies {
		writeComment(w, r, depth+1, now)
	}
}
