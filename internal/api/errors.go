package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/tidwall/gjson"
)

// Code classifies an API failure.
type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeServer       Code = "SERVER"
	CodeBadRequest   Code = "BAD_REQUEST"
)

// NonFieldErrors is the key DRF uses for errors not tied to one field.
const NonFieldErrors = "non_field_errors"

// Error is a non-2xx API response.
type Error struct {
	Method string
	Path   string
	Status int
	Code   Code
	// Detail is the server's "detail" (or "message"/"error") string, if any.
	Detail string
	// Fields maps field names to their messages, in server order.
	Fields map[string][]string
	Body   []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s (HTTP %d)", e.Method, e.Path, e.Message(), e.Status)
}

// Message is the most specific human-readable message available.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if msgs := e.Fields[NonFieldErrors]; len(msgs) > 0 {
		return msgs[0]
	}
	if len(e.Fields) > 0 {
		keys := e.FieldNames()
		return fmt.Sprintf("%s: %s", keys[0], e.FieldError(keys[0]))
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return "request failed"
}

// FieldNames returns the field keys sorted.
func (e *Error) FieldNames() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldError returns the first message for field, or "".
func (e *Error) FieldError(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func newError(method, path string, status int, body []byte) *Error {
	e := &Error{
		Method: method,
		Path:   path,
		Status: status,
		Code:   codeFor(status),
		Body:   body,
	}
	e.Detail, e.Fields = parseErrorBody(body)
	if e.Code == CodeBadRequest && status == http.StatusBadRequest && len(e.Fields) > 0 {
		e.Code = CodeValidation
	}
	return e
}

func codeFor(status int) Code {
	switch {
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= 500:
		return CodeServer
	}
	return CodeBadRequest
}

// parseErrorBody extracts the detail string and per-field messages from an
// error payload. Accepts {"field": ["msg", ...]}, {"field": "msg"} and a bare
// ["msg", ...] array; anything else yields no fields.
func parseErrorBody(body []byte) (string, map[string][]string) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return "", nil
	}
	res := gjson.ParseBytes(body)
	if res.IsArray() {
		if msgs := messages(res); len(msgs) > 0 {
			return msgs[0], nil
		}
		return "", nil
	}
	if !res.IsObject() {
		return "", nil
	}

	var detail string
	fields := map[string][]string{}
	res.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		switch k {
		case "detail", "message", "error":
			if detail == "" && value.Type == gjson.String {
				detail = value.String()
				return true
			}
		}
		if msgs := messages(value); len(msgs) > 0 {
			fields[k] = msgs
		}
		return true
	})
	if len(fields) == 0 {
		fields = nil
	}
	return detail, fields
}

func messages(v gjson.Result) []string {
	switch {
	case v.Type == gjson.String:
		return []string{v.String()}
	case v.IsArray():
		var out []string
		v.ForEach(func(_, item gjson.Result) bool {
			if item.Type == gjson.String {
				out = append(out, item.String())
			} else if item.Exists() && item.Type != gjson.Null {
				out = append(out, item.Raw)
			}
			return true
		})
		return out
	case v.IsObject():
		return []string{v.Raw}
	}
	return nil
}

// AsError returns the *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// HasCode reports whether err is an *Error with the given code.
func HasCode(err error, code Code) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Code == code
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool { return HasCode(err, CodeUnauthorized) }

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool { return HasCode(err, CodeForbidden) }

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

// IsValidation reports whether err is a 400 response with field messages.
func IsValidation(err error) bool { return HasCode(err, CodeValidation) }

// FieldErrors returns the per-field messages of err, or nil.
func FieldErrors(err error) map[string][]string {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Fields
	}
	return nil
}

// DetailIs reports whether err is an *Error whose detail equals s.
func DetailIs(err error, s string) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Detail == s
}
