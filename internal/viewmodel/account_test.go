package viewmodel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
)

func TestLogin_Validation(t *testing.T) {
	_, sess, f := newEnv(t, nil)
	_, err := Login(context.Background(), sess, " ", "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"password", "username"}, verr.FieldNames())
	assert.Empty(t, f.Requests())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, sess, f := newEnv(t, nil)
	f.On("POST", "/auth/login/", 400, `{"non_field_errors": ["Unable to log in with provided credentials."]}`)

	_, err := Login(context.Background(), sess, "ann", "pw")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Unable to log in with provided credentials.", verr.Message)
	assert.True(t, api.IsValidation(err))
}

func TestLogin_Success(t *testing.T) {
	_, sess, f := newEnv(t, nil)
	f.On("POST", "/auth/login/", 200, `{"user": {"id": 1, "username": "ann"}, "access": "a", "refresh": "r"}`)

	u, err := Login(context.Background(), sess, " ann ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ann", u.Username)

	var body model.LoginRequest
	f.Requests()[0].JSON(t, &body)
	assert.Equal(t, "ann", body.Username)
}

func TestProfile_LoadAndUpdate(t *testing.T) {
	svc, sess, f := newEnv(t, reader)
	f.On("GET", "/auth/profile/", 200, `{"id": 1, "username": "rita", "bio": "old"}`)
	f.On("PATCH", "/auth/profile/", 200, `{"id": 1, "username": "rita", "bio": "new"}`)
	ctx := context.Background()

	p := NewProfile(svc, sess)
	require.NoError(t, p.Load(ctx))
	assert.Equal(t, "old", sess.User().Bio)

	u, err := p.Update(ctx, model.ProfileUpdate{Bio: ptr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", u.Bio)
	assert.Equal(t, "new", sess.User().Bio)
}

func TestProfile_UpdateRejectsBadEmail(t *testing.T) {
	svc, sess, f := newEnv(t, reader)
	_, err := NewProfile(svc, sess).Update(context.Background(), model.ProfileUpdate{Email: ptr("nope")})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Empty(t, f.Requests())
}

func TestProfile_ChangePasswordErrorPriority(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
	}{
		{"old first", `{"new_password2": ["c"], "new_password": ["b"], "old_password": ["a"]}`, "old_password", "a"},
		{"new second", `{"new_password2": ["c"], "new_password": ["b"]}`, "new_password", "b"},
		{"confirm third", `{"new_password2": ["c"]}`, "new_password2", "c"},
		{"detail last", `{"detail": "d"}`, "", "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sess, f := newEnv(t, reader)
			f.On("POST", "/auth/password/change/", 400, tt.body)

			err := NewProfile(svc, sess).ChangePassword(context.Background(), model.PasswordChange{
				OldPassword: "x", NewPassword: "y", NewPassword2: "y",
			})
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			if tt.wantField == "" {
				assert.Empty(t, verr.Fields)
				assert.Equal(t, tt.wantMsg, verr.Message)
				return
			}
			assert.Equal(t, map[string]string{tt.wantField: tt.wantMsg}, verr.Fields)
		})
	}
}

func TestProfile_ChangePasswordLocalMismatch(t *testing.T) {
	svc, sess, f := newEnv(t, reader)
	err := NewProfile(svc, sess).ChangePassword(context.Background(), model.PasswordChange{
		OldPassword: "x", NewPassword: "y", NewPassword2: "z",
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "new_password2")
	assert.Empty(t, f.Requests())
}

func TestProfile_Activities(t *testing.T) {
	svc, sess, f := newEnv(t, reader)
	f.On("GET", "/users/my_activities/", 200, `[{"id": 1, "action": "comment", "created_at": "2024-03-15T10:00:00Z"}]`)

	p := NewProfile(svc, sess)
	require.NoError(t, p.LoadActivities(context.Background()))
	assert.Len(t, p.Activities, 1)
}

func TestRegistration_Validate(t *testing.T) {
	svc, sess, _ := newEnv(t, nil)
	r := NewRegistration(svc, sess)
	r.Load(context.Background())
	require.Len(t, r.Roles, 2)

	err := r.Validate(RegistrationFields{
		Username: "new", Email: "bad", Password: "short", Password2: "other",
		FirstName: "N", LastName: "U", Role: 42,
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Passwords do not match.", verr.Fields["password2"])
	assert.Equal(t, "Password must be at least 8 characters.", verr.Fields["password"])
	assert.Equal(t, "Enter a valid email address.", verr.Fields["email"])
	assert.Equal(t, "Unknown account type.", verr.Fields["role"])
}

func TestRegistration_Submit(t *testing.T) {
	svc, sess, f := newEnv(t, nil)
	f.On("POST", "/auth/register/", 201, `{"user": {"id": 5, "username": "new"}, "access": "a", "refresh": "r"}`)
	ctx := context.Background()

	r := NewRegistration(svc, sess)
	r.Load(ctx)
	u, err := r.Submit(ctx, RegistrationFields{
		Username: "new", Email: "new@example.com", Password: "longenough", Password2: "longenough",
		FirstName: "New", LastName: "User", Role: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)

	var body model.RegisterRequest
	f.Calls("POST", "/auth/register/")[0].JSON(t, &body)
	assert.Equal(t, int64(2), body.Role)
	assert.Equal(t, "longenough", body.Password2)
}

func TestRegistration_ValidateCountsRunesAndTrims(t *testing.T) {
	svc, sess, _ := newEnv(t, nil)
	r := NewRegistration(svc, sess)
	r.Load(context.Background())

	base := RegistrationFields{
		Username: " new ", Email: "  new@example.com ", FirstName: "N", LastName: "U", Role: 2,
	}

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"eight multibyte runes", "пароль12", false},
		{"seven multibyte runes", "ééééééé", true},
		{"eight ascii", "longenou", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			f.Password, f.Password2 = tt.password, tt.password
			err := r.Validate(f)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, map[string]string{"password": "Password must be at least 8 characters."}, verr.Fields)
		})
	}
}

func TestRegistration_ValidateRequiredAndDates(t *testing.T) {
	svc, sess, _ := newEnv(t, nil)
	r := NewRegistration(svc, sess)

	err := r.Validate(RegistrationFields{Username: "  ", BirthDate: "15/03/1990"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, msgRequired, verr.Fields["username"])
	assert.Equal(t, msgRequired, verr.Fields["email"])
	assert.Equal(t, msgRequired, verr.Fields["password2"])
	assert.Equal(t, "Choose an account type.", verr.Fields["role"])
	assert.Equal(t, "Enter a date as YYYY-MM-DD.", verr.Fields["birth_date"])
}

func TestRegistration_SubmitSendsTrimmedEmail(t *testing.T) {
	svc, sess, f := newEnv(t, nil)
	f.On("POST", "/auth/register/", 201, `{"user": {"id": 5, "username": "new"}, "access": "a", "refresh": "r"}`)
	ctx := context.Background()

	r := NewRegistration(svc, sess)
	r.Load(ctx)
	_, err := r.Submit(ctx, RegistrationFields{
		Username: "new", Email: " a@b.co ", Password: "longenough", Password2: "longenough",
		FirstName: "New", LastName: "User", Role: 2, BirthDate: "1990-03-15",
	})
	require.NoError(t, err)

	var body model.RegisterRequest
	f.Calls("POST", "/auth/register/")[0].JSON(t, &body)
	assert.Equal(t, "a@b.co", body.Email)
	assert.Equal(t, "1990-03-15", body.BirthDate)
}

func TestProfile_UpdateTrimsEmail(t *testing.T) {
	svc, sess, f := newEnv(t, reader)
	f.On("PATCH", "/auth/profile/", 200, `{"id": 1, "username": "rita", "email": "r@example.com"}`)

	_, err := NewProfile(svc, sess).Update(context.Background(), model.ProfileUpdate{Email: ptr("  r@example.com ")})
	require.NoError(t, err)

	var body map[string]any
	f.Calls("PATCH", "/auth/profile/")[0].JSON(t, &body)
	assert.Equal(t, "r@example.com", body["email"])
}

func TestLogin_TrimmedUsernameRequired(t *testing.T) {
	_, sess, f := newEnv(t, nil)
	_, err := Login(context.Background(), sess, "\t", "pw")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"username": msgRequired}, verr.Fields)
	assert.Empty(t, f.Requests())
}

func TestRegistration_ServerFieldErrors(t *testing.T) {
	svc, sess, f := newEnv(t, nil)
	f.On("POST", "/auth/register/", 400, `{"username": ["A user with that username already exists."]}`)

	_, err := NewRegistration(svc, sess).Submit(context.Background(), RegistrationFields{
		Username: "taken", Email: "t@example.com", Password: "longenough", Password2: "longenough",
		FirstName: "T", LastName: "U", Role: 2,
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "A user with that username already exists.", verr.Fields["username"])
}

func TestValidationError_Error(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.Err())
	v.Add("title", "required")
	v.Add("title", "ignored")
	v.Message = "fix the form"
	assert.Equal(t, "validation failed: fix the form; title: required", v.Error())
}
