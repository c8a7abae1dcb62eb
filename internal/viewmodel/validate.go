package viewmodel

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// forms checks the struct-tagged form fields. Field errors are named after
// the `form` tag, falling back to the `json` tag, so they match the keys
// the server uses in its own field errors.
var forms = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// messages is keyed by "field.tag" and replaces the generic message for
// that check.
type messages map[string]string

var tagMessages = map[string]string{
	"required": msgRequired,
	"email":    "Enter a valid email address.",
	"eqfield":  "The two values do not match.",
}

func (m messages) message(field string, fe validator.FieldError) string {
	if msg, ok := m[field+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("Failed the %s check.", fe.Tag())
}

// checkForm validates a tagged struct and returns one message per field.
func checkForm(form any, m messages) *ValidationError {
	verr := NewValidationError()
	collect(verr, forms.Struct(form), "", m)
	return verr
}

// checkValue validates a single value against tag and reports it under field.
func checkValue(field string, value any, tag string, m messages) *ValidationError {
	verr := NewValidationError()
	collect(verr, forms.Var(value, tag), field, m)
	return verr
}

func collect(verr *ValidationError, err error, field string, m messages) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Message = err.Error()
		return
	}
	for _, fe := range fieldErrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		verr.Add(name, m.message(name, fe))
	}
}
