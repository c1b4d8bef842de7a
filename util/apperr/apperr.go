// Package apperr carries the error taxonomy shared by services and the HTTP
// layer. Errors without a code are internal failures.
package apperr

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrValidation   ErrCode = "VALIDATION"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrUnauthorized ErrCode = "UNAUTHORIZED"
	ErrForbidden    ErrCode = "FORBIDDEN"
	ErrConflict     ErrCode = "CONFLICT"
)

type codedError struct {
	code  ErrCode
	msg   string
	cause error
}

func (e codedError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}
func (e codedError) Code() ErrCode   { return e.code }
func (e codedError) Message() string { return e.msg }
func (e codedError) Unwrap() error   { return e.cause }

func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Newf(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and user-facing message to cause.
func Wrap(c ErrCode, msg string, cause error) error {
	return codedError{code: c, msg: msg, cause: cause}
}

func Validation(msg string) error { return New(ErrValidation, msg) }
func NotFound(msg string) error   { return New(ErrNotFound, msg) }
func Forbidden(msg string) error  { return New(ErrForbidden, msg) }

// Code extracts the error code, or "" for internal errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Message returns the user-facing message of a coded error.
func Message(err error) string {
	var ce interface{ Message() string }
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return ""
}
