package apperr

import (
	"github.com/pkg/errors"
)

// Kind classifies an operation failure so controllers can map it to an HTTP
// status. Wrapping with pkg/errors keeps the classification reachable
// through errors.Cause.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindDependency
)

type Error struct {
	kind    Kind
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Kind() Kind {
	return e.kind
}

func NewValidation(message string) error {
	return &Error{kind: KindValidation, message: message}
}

func NewNotFound(message string) error {
	return &Error{kind: KindNotFound, message: message}
}

func NewConflict(message string) error {
	return &Error{kind: KindConflict, message: message}
}

// WrapDependency marks a store or collaborator failure. Never retried here,
// surfaced to the caller as a generic failure.
func WrapDependency(err error, message string) error {
	return &Error{kind: KindDependency, message: message, cause: err}
}

func kindOf(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind == kind
	}
	return false
}

func IsValidation(err error) bool {
	return kindOf(err, KindValidation)
}

func IsNotFound(err error) bool {
	return kindOf(err, KindNotFound)
}

func IsConflict(err error) bool {
	return kindOf(err, KindConflict)
}

func IsDependency(err error) bool {
	return kindOf(err, KindDependency)
}
