package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/model"
)

var (
	// ErrLoginRequired is returned by operations that need a signed-in user.
	ErrLoginRequired = errors.New("login required")
	// ErrPermissionDenied is returned when the client-side permission check fails.
	ErrPermissionDenied = errors.New("permission denied")
)

// Viewer is the read side of the session.
type Viewer interface {
	User() *model.User
	IsAuthenticated() bool
	CanManageArticles() bool
	CanModerateContent() bool
}

// Session is the session surface the view models drive.
type Session interface {
	Viewer
	Login(ctx context.Context, req model.LoginRequest) (*model.User, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	UpdateUser(ctx context.Context, u model.User) error
}

// ValidationError carries per-field messages for a form, from local
// validation or mapped from a server 400.
type ValidationError struct {
	// Fields maps field name to its first message.
	Fields map[string]string
	// Message is a form-level message with no field.
	Message string
	// Cause is the server error the fields were mapped from, if any.
	Cause error
}

// NewValidationError returns an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records msg for field unless the field already has a message.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Set records msg for field, replacing any earlier message.
func (e *ValidationError) Set(field, msg string) {
	e.Fields[field] = msg
}

// Empty reports whether nothing was recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0 && e.Message == ""
}

// Err returns e, or nil when it is empty.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// FieldNames returns the fields with messages, sorted.
func (e *ValidationError) FieldNames() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields)+1)
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	for _, k := range e.FieldNames() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// fromAPI maps a server validation error onto a form, keeping the first
// message of each field. Errors without field messages are returned as is.
func fromAPI(err error) error {
	apiErr, ok := api.AsError(err)
	if !ok || len(apiErr.Fields) == 0 {
		return err
	}
	v := NewValidationError()
	v.Cause = err
	v.Message = apiErr.Detail
	for field, msgs := range apiErr.Fields {
		if len(msgs) == 0 {
			continue
		}
		if field == api.NonFieldErrors {
			if v.Message == "" {
				v.Message = msgs[0]
			}
			continue
		}
		v.Set(field, msgs[0])
	}
	return v
}

func requireLogin(v Viewer) error {
	if !v.IsAuthenticated() {
		return ErrLoginRequired
	}
	return nil
}
