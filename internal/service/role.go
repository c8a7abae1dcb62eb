package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dooralove/PulseNews/internal/model"
)

// FallbackRoles is served when /roles/public/ is unavailable.
var FallbackRoles = []model.Role{
	{ID: 2, Name: model.RoleReader, DisplayName: "Reader", Description: "Can read articles and leave comments"},
	{ID: 3, Name: model.RoleEditor, DisplayName: "Editor", Description: "Can create and edit articles"},
}

// RoleService covers /roles/public/.
type RoleService struct {
	r      Requester
	logger *slog.Logger
}

// Public returns the roles a user may pick at registration. Any failure
// falls back to FallbackRoles; the error is logged, not returned.
func (s *RoleService) Public(ctx context.Context) []model.Role {
	var page model.Page[model.Role]
	err := s.r.Get(ctx, "/roles/public/", nil, &page)
	if err == nil && len(page.Results) > 0 {
		return page.Results
	}
	if err != nil {
		s.logger.Warn("public roles unavailable, using built-in list", "error", err)
	}
	out := make([]model.Role, len(FallbackRoles))
	copy(out, FallbackRoles)
	return out
}

// Get looks a public role up by id.
func (s *RoleService) Get(ctx context.Context, id int64) (model.Role, error) {
	for _, r := range s.Public(ctx) {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Role{}, fmt.Errorf("unknown role id %d", id)
}
