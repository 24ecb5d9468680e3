package core

import "github.com/pkg/errors"

// ErrDataUnavailable is the cause of every storage error due to a missing, unreadable or malformed data source.
var ErrDataUnavailable = errors.New("data unavailable")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// dataError keeps the original error message while reporting ErrDataUnavailable as its Cause.
type dataError struct {
	msg string
	err error
}

// NewDataError wraps err so that errors.Cause returns ErrDataUnavailable.
func NewDataError(err error, msg string) error {
	return errors.WithStack(&dataError{msg: msg, err: err})
}

func (e *dataError) Error() string {
	if e.err == nil {
		return e.msg + ": " + ErrDataUnavailable.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *dataError) Cause() error { return ErrDataUnavailable }

func (e *dataError) Unwrap() error { return e.err }

// IsDataUnavailable reports whether err was caused by a missing, unreadable or malformed data source.
func IsDataUnavailable(err error) bool {
	return errors.Cause(err) == ErrDataUnavailable
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
