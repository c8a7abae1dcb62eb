package model

import "time"

// Role names known to the API.
const (
	RoleReader = "reader"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Role is a named permission bundle attached to a user.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// User is the account record returned by /auth/profile/ and the auth endpoints.
type User struct {
	ID                 int64      `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	FullName           string     `json:"full_name,omitempty"`
	Role               *Role      `json:"role,omitempty"`
	Bio                string     `json:"bio,omitempty"`
	AvatarURL          string     `json:"avatar_url,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	BirthDate          string     `json:"birth_date,omitempty"`
	IsVerified         bool       `json:"is_verified,omitempty"`
	EmailNotifications *bool      `json:"email_notifications,omitempty"`
	DateJoined         *time.Time `json:"date_joined,omitempty"`

	// Server-computed capability flags. Use CanManageArticles and
	// CanModerateContent rather than reading these directly.
	ManageArticles  bool `json:"can_manage_articles,omitempty"`
	ModerateContent bool `json:"can_moderate_content,omitempty"`
	IsStaff         bool `json:"is_staff,omitempty"`
	IsSuperuser     bool `json:"is_superuser,omitempty"`
}

// RoleName returns the role name, or "" when the user has no role.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// DisplayName returns the full name, falling back to first/last name and
// finally the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	if name := joinName(u.FirstName, u.LastName); name != "" {
		return name
	}
	return u.Username
}

// CanManageArticles reports whether the user may author and edit articles.
// A nil user has no capabilities.
func (u *User) CanManageArticles() bool {
	if u == nil {
		return false
	}
	if u.ManageArticles || u.IsStaff || u.IsSuperuser {
		return true
	}
	switch u.RoleName() {
	case RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// CanModerateContent reports whether the user may moderate other users'
// comments.
func (u *User) CanModerateContent() bool {
	if u == nil {
		return false
	}
	if u.ModerateContent || u.IsStaff || u.IsSuperuser {
		return true
	}
	return u.RoleName() == RoleAdmin
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// LoginRequest is the body of POST /auth/login/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register/.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Role      int64  `json:"role,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User    *User  `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// PasswordChange is the body of POST /auth/password/change/.
type PasswordChange struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are not sent.
type ProfileUpdate struct {
	FirstName          *string
	LastName           *string
	Email              *string
	Bio                *string
	Phone              *string
	BirthDate          *string
	EmailNotifications *bool
	Avatar             *File
}

// Activity is an entry of /users/my_activities/.
type Activity struct {
	ID          int64     `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// File is an upload attached to a multipart submission.
type File struct {
	Name string
	Data []byte
}
