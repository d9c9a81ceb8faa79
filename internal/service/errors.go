package service

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidArgument
	KindConstraintViolation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindConstraintViolation:
		return "ConstraintViolation"
	default:
		return "Unknown"
	}
}

// Error is the failure type returned by BookService for the outcomes callers
// are expected to branch on. Store failures that fit no kind are returned as is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(id uint) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("Book not found with id: %d", id),
	}
}

func InvalidArgument(message string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: message,
	}
}

func ConstraintViolation(err error) *Error {
	return &Error{
		Kind:    KindConstraintViolation,
		Message: "Constraint violation: " + err.Error(),
		Err:     err,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
