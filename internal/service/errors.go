package service

import (
	"errors"
	"fmt"
)

// InputError marks a failure caused by the caller's input: an unknown
// location type, a duplicate nested entity, or a processing failure with
// no recognizable kind. The API layer maps it to a bad-request response.
type InputError struct {
	err error
}

// NewInputErrorf creates an InputError with a formatted message.
func NewInputErrorf(format string, args ...any) *InputError {
	return &InputError{err: fmt.Errorf(format, args...)}
}

// WrapInputError wraps an existing error as an InputError, preserving it
// for errors.Is/As inspection.
func WrapInputError(err error) *InputError {
	return &InputError{err: err}
}

func (e *InputError) Error() string {
	return e.err.Error()
}

func (e *InputError) Unwrap() error {
	return e.err
}

// IsInputError reports whether err is, or wraps, an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
