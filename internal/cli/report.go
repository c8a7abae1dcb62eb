package cli

import (
	"errors"
	"fmt"

	"github.com/Dooralove/PulseNews/internal/api"
	"github.com/Dooralove/PulseNews/internal/draft"
	"github.com/Dooralove/PulseNews/internal/view"
	"github.com/Dooralove/PulseNews/internal/viewmodel"
)

// Error codes for failures that do not come from the API.
const (
	ErrCodeGeneric    = "ERROR"
	ErrCodeUsage      = "USAGE"
	ErrCodeConfig     = "CONFIG"
	ErrCodeDraft      = "DRAFT"
	ErrCodeAborted    = "ABORTED"
	ErrCodeValidation = string(api.CodeValidation)
)

const msgNotLoggedIn = "not logged in, run `pulse login`"

// errAborted is returned when the user declines a confirmation.
var errAborted = errors.New("aborted")

// failure is an error classified for output.
type failure struct {
	code    string
	message string
	details any
	exit    int
	form    *viewmodel.ValidationError
}

func classify(err error) failure {
	var (
		exitErr *ExitError
		verr    *viewmodel.ValidationError
		loadErr *draft.LoadError
	)
	switch {
	case errors.As(err, &verr):
		return failure{
			code:    ErrCodeValidation,
			message: "validation failed",
			details: validationDetails(verr),
			exit:    ExitFailure,
			form:    verr,
		}
	case errors.As(err, &loadErr):
		return failure{code: ErrCodeDraft, message: loadErr.Error(), exit: ExitCommandError}
	case errors.As(err, &exitErr):
		code := ErrCodeGeneric
		if exitErr.Code == ExitCommandError {
			code = ErrCodeUsage
		}
		return failure{code: code, message: exitErr.Error(), exit: exitErr.Code}
	case errors.Is(err, errAborted):
		return failure{code: ErrCodeAborted, message: "aborted", exit: ExitFailure}
	case errors.Is(err, viewmodel.ErrLoginRequired):
		return failure{code: string(api.CodeUnauthorized), message: msgNotLoggedIn, exit: ExitFailure}
	case errors.Is(err, viewmodel.ErrPermissionDenied):
		return failure{code: string(api.CodeForbidden), message: "permission denied", exit: ExitFailure}
	}

	if apiErr, ok := api.AsError(err); ok {
		f := failure{code: string(apiErr.Code), message: apiErr.Message(), exit: ExitFailure}
		switch apiErr.Code {
		case api.CodeUnauthorized:
			f.message = msgNotLoggedIn
		case api.CodeValidation:
			f.details = apiErr.Fields
		}
		return f
	}
	return failure{code: ErrCodeGeneric, message: err.Error(), exit: ExitFailure}
}

func validationDetails(v *viewmodel.ValidationError) map[string]any {
	d := map[string]any{"fields": v.Fields}
	if v.Message != "" {
		d["message"] = v.Message
	}
	return d
}

// Fail writes err in the configured format and returns it as a reported
// ExitError carrying the exit code.
func (f *OutputFormatter) Fail(err error) error {
	if err == nil || isReported(err) {
		return err
	}
	fl := classify(err)
	f.VerboseLog("error: %v", err)

	if f.Format != "json" && fl.form != nil {
		w := f.GetErrWriter()
		fmt.Fprintf(w, "Error [%s]: %s\n", fl.code, fl.message)
		view.ValidationError(w, fl.form)
	} else if f.Format != "json" && fl.code == string(api.CodeValidation) {
		w := f.GetErrWriter()
		fmt.Fprintf(w, "Error [%s]: %s\n", fl.code, fl.message)
		if apiErr, ok := api.AsError(err); ok {
			for _, k := range apiErr.FieldNames() {
				fmt.Fprintf(w, "  %s: %s\n", k, apiErr.FieldError(k))
			}
		}
	} else if werr := f.Error(fl.code, fl.message, fl.details); werr != nil {
		return werr
	}
	return &ExitError{Code: fl.exit, Message: fl.message, Err: err, reported: true}
}

// failCode reports err under an explicit code.
func (f *OutputFormatter) failCode(code string, exit int, err error) error {
	if werr := f.Error(code, err.Error(), nil); werr != nil {
		return werr
	}
	return &ExitError{Code: exit, Message: err.Error(), Err: err, reported: true}
}
