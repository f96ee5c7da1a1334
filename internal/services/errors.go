package services

import "fmt"

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindUnauthorized
	KindDependency
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindUnauthorized:
		return "unauthorized"
	case KindDependency:
		return "dependency"
	default:
		return "internal"
	}
}

// Error is the typed failure returned across the service boundary. Message is
// safe to show to clients; Err carries the underlying cause for logs.
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

func validationError(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func conflictError(msg string, err error) error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

func notFoundError(msg string, err error) error {
	return &Error{Kind: KindNotFound, Message: msg, Err: err}
}

func authError(msg string) error { return &Error{Kind: KindAuth, Message: msg} }

func dependencyError(msg string, err error) error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

func internalError(err error) error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}
