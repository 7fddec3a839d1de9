package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how it should be reported to the caller.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindDuplicate
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not found"
	case KindDuplicate:
		return "duplicate"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is an error with a kind and a message that is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	// Fields holds per-field messages for request validation failures.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or missing input.
func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// InvalidFields reports a request body that failed field validation.
func InvalidFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// FieldsOf returns the per-field messages carried by err, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// Authentication reports a missing or invalid credential.
func Authentication(format string, args ...interface{}) *Error {
	return newf(KindAuthentication, format, args...)
}

// Authorization reports an authenticated caller acting outside its rights.
func Authorization(format string, args ...interface{}) *Error {
	return newf(KindAuthorization, format, args...)
}

// NotFound reports a missing entity.
func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Duplicate reports a uniqueness violation.
func Duplicate(format string, args ...interface{}) *Error {
	return newf(KindDuplicate, format, args...)
}

// Persistence wraps a storage failure. The message is shown to clients, err is not.
func Persistence(err error, format string, args ...interface{}) *Error {
	e := newf(KindPersistence, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
