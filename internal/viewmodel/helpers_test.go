package viewmodel

import (
	"context"
	"testing"

	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/service"
	"github.com/Dooralove/PulseNews/internal/testutil"
)

// fakeSession is an in-memory Session backed by the auth service.
type fakeSession struct {
	svc  *service.Services
	user *model.User
}

func (s *fakeSession) User() *model.User        { return s.user }
func (s *fakeSession) IsAuthenticated() bool    { return s.user != nil }
func (s *fakeSession) CanManageArticles() bool  { return s.user.CanManageArticles() }
func (s *fakeSession) CanModerateContent() bool { return s.user.CanModerateContent() }

func (s *fakeSession) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	resp, err := s.svc.Auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	s.user = resp.User
	return s.user, nil
}

func (s *fakeSession) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	resp, err := s.svc.Auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.user = resp.User
	return s.user, nil
}

func (s *fakeSession) UpdateUser(_ context.Context, u model.User) error {
	s.user = &u
	return nil
}

var (
	reader = &model.User{ID: 1, Username: "rita", Role: &model.Role{ID: 2, Name: model.RoleReader}}
	editor = &model.User{ID: 2, Username: "ed", Role: &model.Role{ID: 3, Name: model.RoleEditor}}
	admin  = &model.User{ID: 3, Username: "ada", Role: &model.Role{ID: 1, Name: model.RoleAdmin}}
)

func newEnv(t *testing.T, user *model.User) (*service.Services, *fakeSession, *testutil.FakeAPI) {
	t.Helper()
	f := testutil.NewFakeAPI(t)
	svc := service.New(f.Client("tok"), nil)
	return svc, &fakeSession{svc: svc, user: user}, f
}

func ptr[T any](v T) *T { return &v }
