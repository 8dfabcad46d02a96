package response

import (
	"errors"
)

// Error carries the HTTP status a domain error should surface with. Two
// errors compare equal when both code and message match.
type Error struct {
	Code int
	Err  error
}

func NewError(code int, msg string) error {
	return &Error{Code: code, Err: errors.New(msg)}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Err.Error() == other.Err.Error()
}
