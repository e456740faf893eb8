package form

import "errors"

var (
	// ErrValidation wraps every FieldError. No backend call is made.
	ErrValidation = errors.New("validation failed")
	// ErrNoWorkspace means the submitting user has no user_roles row.
	ErrNoWorkspace = errors.New("no workspace found")
)

// FieldError names the form field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func required(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}

func invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
