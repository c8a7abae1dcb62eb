package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dooralove/PulseNews/internal/api"
)

// Requester is the subset of *api.Client the services use.
type Requester interface {
	Get(ctx context.Context, path string, query map[string]string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
	PostForm(ctx context.Context, path string, form *api.Form, out any) error
	PatchForm(ctx context.Context, path string, form *api.Form, out any) error
}

var _ Requester = (*api.Client)(nil)

// Services bundles one instance of every resource service.
type Services struct {
	Articles  *ArticleService
	Comments  *CommentService
	Reactions *ReactionService
	Bookmarks *BookmarkService
	Auth      *AuthService
	Roles     *RoleService
}

// New wires all services to the same requester.
func New(r Requester, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	return &Services{
		Articles:  &ArticleService{r: r},
		Comments:  &CommentService{r: r},
		Reactions: &ReactionService{r: r},
		Bookmarks: &BookmarkService{r: r},
		Auth:      &AuthService{r: r},
		Roles:     &RoleService{r: r, logger: logger},
	}
}

func path(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
