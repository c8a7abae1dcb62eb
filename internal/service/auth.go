package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
)

// AuthService covers /auth/ and /users/my_activities/.
type AuthService struct {
	r Requester
}

// Login exchanges credentials for tokens and the user record.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	if err := s.r.Post(ctx, "/auth/login/", req, &out); err != nil {
		return model.AuthResponse{}, fmt.Errorf("login: %w", err)
	}
	return out, nil
}

// Register creates an account and returns tokens for it.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	if err := s.r.Post(ctx, "/auth/register/", req, &out); err != nil {
		return model.AuthResponse{}, fmt.Errorf("register: %w", err)
	}
	return out, nil
}

// Logout blacklists the refresh token server-side.
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	body := struct {
		Refresh string `json:"refresh"`
	}{refresh}
	if err := s.r.Post(ctx, "/auth/logout/", body, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Refresh trades a refresh token for a new access token. The refresh token
// is returned too when the server rotates it, otherwise "".
func (s *AuthService) Refresh(ctx context.Context, refresh string) (access, rotated string, err error) {
	body := struct {
		Refresh string `json:"refresh"`
	}{refresh}
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := s.r.Post(ctx, "/auth/token/refresh/", body, &out); err != nil {
		return "", "", fmt.Errorf("refresh token: %w", err)
	}
	return out.Access, out.Refresh, nil
}

// Profile fetches the current user.
func (s *AuthService) Profile(ctx context.Context) (model.User, error) {
	var u model.User
	if err := s.r.Get(ctx, "/auth/profile/", nil, &u); err != nil {
		return model.User{}, fmt.Errorf("get profile: %w", err)
	}
	return u, nil
}

// UpdateProfile patches the set fields. The request is JSON unless an avatar
// is attached, in which case it is multipart.
func (s *AuthService) UpdateProfile(ctx context.Context, in model.ProfileUpdate) (model.User, error) {
	var u model.User
	var err error
	if in.Avatar != nil {
		err = s.r.PatchForm(ctx, "/auth/profile/", profileForm(in), &u)
	} else {
		err = s.r.Patch(ctx, "/auth/profile/", profileJSON(in), &u)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func profileJSON(in model.ProfileUpdate) map[string]any {
	body := map[string]any{}
	for k, v := range profileStrings(in) {
		body[k] = v
	}
	if in.EmailNotifications != nil {
		body["email_notifications"] = *in.EmailNotifications
	}
	return body
}

func profileForm(in model.ProfileUpdate) *api.Form {
	form := api.NewForm()
	// fixed order keeps the body deterministic
	strs := profileStrings(in)
	for _, k := range []string{"first_name", "last_name", "email", "bio", "phone", "birth_date"} {
		if v, ok := strs[k]; ok {
			form.Add(k, v)
		}
	}
	if in.EmailNotifications != nil {
		form.Add("email_notifications", strconv.FormatBool(*in.EmailNotifications))
	}
	form.AddFile("avatar", *in.Avatar)
	return form
}

func profileStrings(in model.ProfileUpdate) map[string]string {
	out := map[string]string{}
	set := func(k string, v *string) {
		if v != nil {
			out[k] = *v
		}
	}
	set("first_name", in.FirstName)
	set("last_name", in.LastName)
	set("email", in.Email)
	set("bio", in.Bio)
	set("phone", in.Phone)
	set("birth_date", in.BirthDate)
	return out
}

// ChangePassword changes the current user's password.
func (s *AuthService) ChangePassword(ctx context.Context, req model.PasswordChange) error {
	if err := s.r.Post(ctx, "/auth/password/change/", req, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// Activities lists the current user's recent activity.
func (s *AuthService) Activities(ctx context.Context) ([]model.Activity, error) {
	var page model.Page[model.Activity]
	if err := s.r.Get(ctx, "/users/my_activities/", nil, &page); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return page.Results, nil
}
