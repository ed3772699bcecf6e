// Package errors attaches machine-readable codes to clustergraph failures so
// the CLI and the HTTP server report them the same way.
//
//	err := errors.New(errors.ErrCodeDuplicateID, "node %q declared twice", id)
//	errors.Is(err, errors.ErrCodeDuplicateID) // true
//
//	err = errors.Wrap(errors.ErrCodeLayoutFailed, cause, "macro layout")
//
// Input the layout tolerates, such as unresolved relationship names, empty
// clusters or dangling member ids, never produces an error.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable identifier for a class of failure.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidID     Code = "INVALID_ID"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidEngine Code = "INVALID_ENGINE"

	ErrCodeDuplicateID           Code = "DUPLICATE_ID"
	ErrCodeUnknownReference      Code = "UNKNOWN_REFERENCE"
	ErrCodeOverlappingMembership Code = "OVERLAPPING_MEMBERSHIP"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeLayoutFailed Code = "LAYOUT_FAILED"
	ErrCodeCanceled     Code = "CANCELED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
)

var inputCodes = map[Code]bool{
	ErrCodeInvalidInput:          true,
	ErrCodeInvalidID:             true,
	ErrCodeInvalidConfig:         true,
	ErrCodeInvalidEngine:         true,
	ErrCodeDuplicateID:           true,
	ErrCodeUnknownReference:      true,
	ErrCodeOverlappingMembership: true,
}

// Input reports whether c blames the caller's input.
func (c Code) Input() bool { return inputCodes[c] }

// Error is a coded failure with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause from coded errors.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err was caused by invalid caller input rather
// than an engine or infrastructure fault.
func IsInputError(err error) bool { return GetCode(err).Input() }
