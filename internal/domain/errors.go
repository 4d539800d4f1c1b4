package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures for callers. PersistenceFailure is
// recovered internally and never reaches the HTTP surface.
type ErrorKind string

const (
	ErrInvalidInput        ErrorKind = "InvalidInput"
	ErrNoServicesAvailable ErrorKind = "NoServicesAvailable"
	ErrNoViableCandidates  ErrorKind = "NoViableCandidates"
	ErrPersistenceFailure  ErrorKind = "PersistenceFailure"
	ErrTimeout             ErrorKind = "Timeout"
	ErrInternal            ErrorKind = "Internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the error kind, defaulting to Internal for plain errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrInternal
}
