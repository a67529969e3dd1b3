// Package apperr defines the error kinds surfaced by services and how they
// map to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an application error
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status for the kind. Both auth kinds answer 401.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated, KindForbidden:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is one offending input field
type FieldError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

func (f FieldError) String() string {
	return strings.Join(f.Path, ".") + ": " + f.Message
}

// Error is the single error type returned across service boundaries
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Messages used by the authorization gate
const (
	ReasonNoSession        = "no valid session"
	ReasonInsufficientRole = "insufficient role"
	MsgValidationFailed    = "Validation failed"
)

// Validation builds a validation failure carrying every offending field
func Validation(details []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidationFailed, Details: details}
}

// InvalidField is a validation failure for a single field
func InvalidField(field, message string) *Error {
	return Validation([]FieldError{{Path: []string{field}, Message: message}})
}

// Unauthenticated is returned when no valid session is present
func Unauthenticated(reason string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: reason}
}

// Forbidden is returned when the session is valid but the role is not
func Forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Message: reason}
}

// NotFound is returned for missing or soft-deleted records
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict is returned on uniqueness violations
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Upstream wraps a store or transport failure. The message is never shown to clients.
func Upstream(op string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: op, Err: err}
}

// KindOf returns the kind of err, KindUnknown for foreign errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is an *Error of kind k
func Is(err error, k Kind) bool {
	return KindOf(err) == k
}

// As extracts the *Error from err
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
