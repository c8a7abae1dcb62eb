package viewmodel

import (
	"context"
	"strings"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
	"github.com/Dooralove/PulseNews/internal/service"
)

// passwordErrorFields is the order in which password-change errors are
// reported; the first present wins.
var passwordErrorFields = []string{"old_password", "new_password", "new_password2"}

// Login validates credentials and signs in.
func Login(ctx context.Context, sess Session, username, password string) (*model.User, error) {
	form := struct {
		Username string `form:"username" validate:"required"`
		Password string `form:"password" validate:"required"`
	}{strings.TrimSpace(username), password}
	if err := checkForm(form, nil).Err(); err != nil {
		return nil, err
	}
	u, err := sess.Login(ctx, model.LoginRequest{Username: form.Username, Password: password})
	if err != nil {
		return nil, fromAPI(err)
	}
	return u, nil
}

// Profile is the signed-in user's account view.
type Profile struct {
	svc  *service.Services
	sess Session

	User       *model.User
	Activities []model.Activity
}

// NewProfile creates the view model.
func NewProfile(svc *service.Services, sess Session) *Profile {
	return &Profile{svc: svc, sess: sess}
}

// Load fetches the profile and updates the session's cached user.
func (p *Profile) Load(ctx context.Context) error {
	if err := requireLogin(p.sess); err != nil {
		return err
	}
	u, err := p.svc.Auth.Profile(ctx)
	if err != nil {
		return err
	}
	if err := p.sess.UpdateUser(ctx, u); err != nil {
		return err
	}
	p.User = &u
	return nil
}

// Update patches the profile and replaces the session user.
func (p *Profile) Update(ctx context.Context, in model.ProfileUpdate) (*model.User, error) {
	if err := requireLogin(p.sess); err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			if err := checkValue("email", email, "email", nil).Err(); err != nil {
				return nil, err
			}
		}
		in.Email = &email
	}
	u, err := p.svc.Auth.UpdateProfile(ctx, in)
	if err != nil {
		return nil, fromAPI(err)
	}
	if err := p.sess.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	p.User = &u
	return &u, nil
}

// ChangePassword changes the password. A failure reports a single message:
// the first of old_password, new_password, new_password2, then detail.
func (p *Profile) ChangePassword(ctx context.Context, req model.PasswordChange) error {
	if err := requireLogin(p.sess); err != nil {
		return err
	}
	form := struct {
		OldPassword  string `form:"old_password" validate:"required"`
		NewPassword  string `form:"new_password" validate:"required"`
		NewPassword2 string `form:"new_password2" validate:"eqfield=NewPassword"`
	}{req.OldPassword, req.NewPassword, req.NewPassword2}
	if err := checkForm(form, passwordMessages).Err(); err != nil {
		return err
	}

	err := p.svc.Auth.ChangePassword(ctx, req)
	if err == nil {
		return nil
	}
	apiErr, ok := api.AsError(err)
	if !ok {
		return err
	}
	out := NewValidationError()
	out.Cause = err
	for _, field := range passwordErrorFields {
		if msg := apiErr.FieldError(field); msg != "" {
			out.Set(field, msg)
			return out
		}
	}
	if apiErr.Detail != "" {
		out.Message = apiErr.Detail
		return out
	}
	return err
}

// LoadActivities fetches the user's recent activity.
func (p *Profile) LoadActivities(ctx context.Context) error {
	if err := requireLogin(p.sess); err != nil {
		return err
	}
	acts, err := p.svc.Auth.Activities(ctx)
	if err != nil {
		return err
	}
	p.Activities = acts
	return nil
}

// RegistrationFields is the sign-up form.
type RegistrationFields struct {
	Username  string `form:"username" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
	FirstName string `form:"first_name" validate:"required"`
	LastName  string `form:"last_name" validate:"required"`
	Phone     string `form:"phone"`
	BirthDate string `form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	// Role must also be one of the loaded public roles.
	Role int64 `form:"role" validate:"required"`
}

// cleaned trims the identity fields and NFC-normalizes the names.
// Passwords are kept as typed.
func (f RegistrationFields) cleaned() RegistrationFields {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = model.NormalizeText(f.FirstName)
	f.LastName = model.NormalizeText(f.LastName)
	f.Phone = strings.TrimSpace(f.Phone)
	f.BirthDate = strings.TrimSpace(f.BirthDate)
	return f
}

var registrationMessages = messages{
	"password.min":        "Password must be at least 8 characters.",
	"password2.eqfield":   "Passwords do not match.",
	"role.required":       "Choose an account type.",
	"birth_date.datetime": "Enter a date as YYYY-MM-DD.",
}

var passwordMessages = messages{
	"new_password2.eqfield": "Passwords do not match.",
}

// Registration is the sign-up view.
type Registration struct {
	svc  *service.Services
	sess Session

	Roles []model.Role
}

// NewRegistration creates the view model.
func NewRegistration(svc *service.Services, sess Session) *Registration {
	return &Registration{svc: svc, sess: sess}
}

// Load fetches the selectable roles; it never fails.
func (r *Registration) Load(ctx context.Context) {
	r.Roles = r.svc.Roles.Public(ctx)
}

// Validate checks the form locally, after trimming.
func (r *Registration) Validate(f RegistrationFields) error {
	verr := checkForm(f.cleaned(), registrationMessages)
	if f.Role != 0 && len(r.Roles) > 0 && !hasRole(r.Roles, f.Role) {
		verr.Add("role", "Unknown account type.")
	}
	return verr.Err()
}

// Submit validates, registers and signs in.
func (r *Registration) Submit(ctx context.Context, f RegistrationFields) (*model.User, error) {
	if err := r.Validate(f); err != nil {
		return nil, err
	}
	f = f.cleaned()
	u, err := r.sess.Register(ctx, model.RegisterRequest{
		Username:  f.Username,
		Email:     f.Email,
		Password:  f.Password,
		Password2: f.Password2,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		BirthDate: f.BirthDate,
		Role:      f.Role,
	})
	if err != nil {
		return nil, fromAPI(err)
	}
	return u, nil
}

func hasRole(roles []model.Role, id int64) bool {
	for _, r := range roles {
		if r.ID == id {
			return true
		}
	}
	return false
}
