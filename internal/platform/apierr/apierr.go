package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yungbote/betterday-backend/internal/types"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromDomain translates the typed errors the service layer returns into
// HTTP-facing errors. Anything unrecognized becomes a 500.
func FromDomain(err error) *Error {
	var (
		validation *types.ValidationError
		notFound   *types.NotFoundError
		scope      *types.ScopeError
		inUse      *types.ImportanceInUseError
		already    *Error
	)
	switch {
	case errors.As(err, &already):
		return already
	case errors.As(err, &validation):
		return New(http.StatusBadRequest, "validation_failed", err)
	case errors.As(err, &notFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.As(err, &scope):
		return New(http.StatusNotFound, "not_found", err)
	case errors.As(err, &inUse):
		return New(http.StatusConflict, "importance_in_use", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", err)
	}
}
