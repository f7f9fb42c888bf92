// Package serrors attaches a semantic kind to errors so callers can tell a
// missing scan root from an undecodable file without matching on strings.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a sentinel naming a failure category. Only NewKind creates Kinds.
type Kind interface {
	error
	isKind()
}

type kind struct{ name string }

func (k kind) Error() string { return k.name }
func (k kind) isKind()       {}

// NewKind creates a Kind with the given name. Kinds compare by value.
func NewKind(name string) Kind { return kind{name: name} }

// Failure categories of a validation run.
var (
	// ErrNotFound indicates the scan root or a referenced file does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrBadRequest indicates invalid input such as a root that is not a
	// directory or an unknown configuration value.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrDecode indicates a file's bytes are not valid UTF-8.
	ErrDecode = NewKind("DECODE")
	// ErrInternal indicates an unexpected failure such as an I/O error while walking.
	ErrInternal = NewKind("INTERNAL")
)

// Error couples a Kind with an optional message and an optional cause.
// errors.Is and errors.As match both the kind and anything in the cause chain.
type Error struct {
	kind  Kind
	cause error
	msg   string
}

// With returns an error of kind k with a formatted message and no cause.
func With(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of kind k wrapping cause, prefixed with a formatted message.
func Wrap(k Kind, cause error, format string, args ...any) *Error {
	return &Error{kind: k, cause: cause, msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind carried by err or any error it wraps, or nil when
// err carries no semantic kind.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return nil
}

// Error renders "<msg>: <cause>", falling back to whichever part is set and
// finally to the kind name.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch {
	case e.msg != "" && e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	case e.msg != "":
		return e.msg
	case e.cause != nil:
		return e.cause.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.cause }

// Is matches target against the kind first, then the cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) ||
		(e.cause != nil && errors.Is(e.cause, target))
}

// As resolves target from the kind first, then the cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) ||
		(e.cause != nil && errors.As(e.cause, target))
}
