package apierr

import (
	"fmt"
	"net/http"
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

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

func BadRequest(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func Conflict(code string, err error) *Error {
	return New(http.StatusConflict, code, err)
}

// FieldError is one entry of a validation failure: the JSON name of the
// offending field and a human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
