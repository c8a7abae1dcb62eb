package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
)

// Keys under which the session is persisted.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrNoAccessToken is returned when a login or registration response
// carries no access token.
var ErrNoAccessToken = errors.New("server response carried no access token")

// Store is the persistent key-value storage the session lives in.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, pairs map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
}

// Authenticator is the auth API the session drives.
type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	Logout(ctx context.Context, refresh string) error
	Profile(ctx context.Context) (model.User, error)
	Refresh(ctx context.Context, refresh string) (access, rotated string, err error)
}

// Session holds the current user and tokens.
//
// Thread-safety: all methods are safe for concurrent use.
type Session struct {
	store  Store
	auth   Authenticator
	logger *slog.Logger

	mu      sync.RWMutex
	state   State
	user    *model.User
	access  string
	refresh string
}

// New creates a session in StateLoading. Call Init before use.
func New(store Store, auth Authenticator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, auth: auth, logger: logger, state: StateLoading}
}

// Init restores the persisted session. With both a token and a cached user
// the session is authenticated at once; the profile is then refreshed from
// the server, and a failed refresh is logged and ignored.
func (s *Session) Init(ctx context.Context) error {
	access, hasToken, err := s.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	refresh, _, err := s.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var user model.User
	hasUser, err := s.store.GetJSON(ctx, KeyUser, &user)
	if err != nil {
		s.logger.Warn("cached user unreadable, ignoring", "error", err)
		hasUser = false
	}

	if !hasToken || access == "" || !hasUser {
		s.mu.Lock()
		s.state = StateAnonymous
		s.user, s.access, s.refresh = nil, "", ""
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &user
	s.access, s.refresh = access, refresh
	s.mu.Unlock()

	if _, err := s.RefreshProfile(ctx); err != nil {
		s.logger.Warn("profile refresh failed", "error", err)
	}
	return nil
}

// RefreshProfile reloads the user from the server. An expired access token
// is renewed once with the refresh token before giving up.
func (s *Session) RefreshProfile(ctx context.Context) (*model.User, error) {
	u, err := s.auth.Profile(ctx)
	if api.IsUnauthorized(err) {
		if rerr := s.renewAccess(ctx); rerr != nil {
			return nil, errors.Join(err, rerr)
		}
		u, err = s.auth.Profile(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := s.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return s.User(), nil
}

func (s *Session) renewAccess(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.refresh
	s.mu.RUnlock()
	if refresh == "" {
		return errors.New("no refresh token")
	}

	access, rotated, err := s.auth.Refresh(ctx, refresh)
	if err != nil {
		return err
	}
	pairs := map[string]string{KeyAccessToken: access}
	if rotated != "" {
		pairs[KeyRefreshToken] = rotated
		refresh = rotated
	}
	if err := s.store.SetMany(ctx, pairs); err != nil {
		return fmt.Errorf("persist refreshed token: %w", err)
	}

	s.mu.Lock()
	s.access, s.refresh = access, refresh
	s.mu.Unlock()
	s.logger.Debug("access token renewed")
	return nil
}

// Login authenticates and persists the returned tokens and user.
func (s *Session) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

// Register creates an account and signs in as it.
func (s *Session) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp)
}

func (s *Session) establish(ctx context.Context, resp model.AuthResponse) (*model.User, error) {
	if resp.Access == "" {
		return nil, ErrNoAccessToken
	}
	if resp.User == nil {
		resp.User = &model.User{}
	}
	if err := s.store.SetMany(ctx, map[string]string{
		KeyAccessToken:  resp.Access,
		KeyRefreshToken: resp.Refresh,
	}); err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}
	if err := s.store.SetJSON(ctx, KeyUser, resp.User); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	u := *resp.User
	s.user = &u
	s.access, s.refresh = resp.Access, resp.Refresh
	s.state = StateAuthenticated
	s.mu.Unlock()
	return s.User(), nil
}

// Logout revokes the refresh token server-side and clears the session. The
// server call is best effort.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.refresh
	s.mu.RUnlock()

	if refresh != "" {
		if err := s.auth.Logout(ctx, refresh); err != nil {
			s.logger.Warn("logout request failed", "error", err)
		}
	}

	s.mu.Lock()
	s.user, s.access, s.refresh = nil, "", ""
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.store.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// UpdateUser replaces the in-memory and cached user.
func (s *Session) UpdateUser(ctx context.Context, u model.User) error {
	if err := s.store.SetJSON(ctx, KeyUser, u); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// AccessToken returns the bearer token, or "" when anonymous. Its signature
// fits api.TokenSource.
func (s *Session) AccessToken(context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// CanManageArticles reports whether the current user may author articles.
func (s *Session) CanManageArticles() bool {
	return s.User().CanManageArticles()
}

// CanModerateContent reports whether the current user may moderate.
func (s *Session) CanModerateContent() bool {
	return s.User().CanModerateContent()
}
