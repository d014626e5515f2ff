package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an error
type Code string

const (
	CodeUnknown         Code = "unknown"
	CodeInvalidArgument Code = "invalid_argument"
	CodeNotFound        Code = "not_found"
	CodeInternal        Code = "internal"
	CodeUnavailable     Code = "unavailable"

	// CodeValidation covers rejected actions that never mutate state
	CodeValidation Code = "validation"

	// CodeInsufficientResource means the hourglass cannot cover a cost
	CodeInsufficientResource Code = "insufficient_resource"

	// CodeWrongPhase means the action arrived outside the acting side's turn
	CodeWrongPhase Code = "wrong_phase"

	// CodeNotOwned means the card is not in the actor's hand
	CodeNotOwned Code = "not_owned"

	// CodeUnknownEffect and CodeUnimplementedDivinity are content-integrity
	// failures: the card data references behavior the engine does not have.
	CodeUnknownEffect         Code = "unknown_effect"
	CodeUnimplementedDivinity Code = "unimplemented_divinity"
)

// Error is an application error with a code and optional metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err, keeping the code of an inner *Error when there is one
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if errors.As(err, &inner) {
		return &Error{
			Code:    inner.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(inner.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error and overrides its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// InsufficientResourcef reports a cost the hourglass cannot cover
func InsufficientResourcef(format string, args ...any) *Error {
	return Newf(CodeInsufficientResource, format, args...)
}

func WrongPhasef(format string, args ...any) *Error {
	return Newf(CodeWrongPhase, format, args...)
}

func NotOwnedf(format string, args ...any) *Error {
	return Newf(CodeNotOwned, format, args...)
}

func UnknownEffectf(format string, args ...any) *Error {
	return Newf(CodeUnknownEffect, format, args...)
}

func UnimplementedDivinityf(format string, args ...any) *Error {
	return Newf(CodeUnimplementedDivinity, format, args...)
}

// Is reports whether the outermost *Error in err's chain carries code
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// HasCode reports whether any *Error in err's chain carries code.
// Wrapping with WrapWithCode hides the inner code from Is but not from HasCode.
func HasCode(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

func IsInternal(err error) bool {
	return Is(err, CodeInternal)
}

// IsValidation reports a rejected action. Insufficient sand, a wrong phase
// and an unowned card are all validation failures.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case CodeValidation, CodeInsufficientResource, CodeWrongPhase, CodeNotOwned:
		return true
	}
	return false
}

func IsInsufficientResource(err error) bool {
	return HasCode(err, CodeInsufficientResource)
}

// IsContentIntegrity reports errors caused by card data naming behavior the
// engine cannot execute
func IsContentIntegrity(err error) bool {
	return HasCode(err, CodeUnknownEffect) || HasCode(err, CodeUnimplementedDivinity)
}

// GetCode returns the outermost error code
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// GetMeta returns the outermost error metadata
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
