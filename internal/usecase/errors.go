package usecase

import (
	"errors"
	"fmt"

	"moto-tours/pkg/utils"
)

// Error categories. Service errors wrap exactly one of these and their text names the category,
// so callers may classify with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }

func (e *serviceError) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...any) error {
	return &serviceError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// ValidationError carries per-field messages alongside the summary.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationFailed(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// validate runs struct validation and returns a *ValidationError or nil.
func validate(v any) error {
	if errs := utils.ValidateStruct(v); len(errs) > 0 {
		return validationFailed(errs)
	}
	return nil
}
