package service

import (
	"errors"
	"fmt"

	"moviematrix/internal/validation"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// Error carries a client-facing message and one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// validate runs the struct rules and wraps failures as ErrValidation.
func validate(req any) error {
	if err := validation.ValidateStruct(req); err != nil {
		return &Error{Kind: ErrValidation, Msg: err.Error()}
	}
	return nil
}
