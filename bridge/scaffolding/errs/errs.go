// Package errs provides the coded application error returned by handlers.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode pairs a stable error code with the HTTP status it maps to.
type ErrCode struct {
	value  string
	status int
}

var (
	InvalidArgument = ErrCode{value: "invalid_argument", status: http.StatusBadRequest}
	Unprocessable   = ErrCode{value: "unprocessable", status: http.StatusUnprocessableEntity}
	Unauthenticated = ErrCode{value: "unauthenticated", status: http.StatusUnauthorized}
	NotFound        = ErrCode{value: "not_found", status: http.StatusNotFound}
	AlreadyExists   = ErrCode{value: "already_exists", status: http.StatusConflict}
	Unavailable     = ErrCode{value: "unavailable", status: http.StatusServiceUnavailable}
	Internal        = ErrCode{value: "internal", status: http.StatusInternalServerError}

	// InternalOnlyLog is logged in full and sent to the client as a generic
	// Internal error.
	InternalOnlyLog = ErrCode{value: "internal_only_log", status: http.StatusInternalServerError}
)

func (ec ErrCode) String() string {
	return ec.value
}

// HTTPStatus returns the status for the code, 500 for the zero value.
func (ec ErrCode) HTTPStatus() int {
	if ec.status == 0 {
		return http.StatusInternalServerError
	}
	return ec.status
}

func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.value), nil
}

// Error is an application error that knows how to render itself.
type Error struct {
	Code     ErrCode `json:"code"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New wraps err with a code. The message sent to the client is err's text.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error from a format string.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// GetError returns a copy of the *Error inside err, or nil.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
