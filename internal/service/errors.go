package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("admin access required")
	ErrUnavailable        = errors.New("car is not available")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidFileFormat  = errors.New("invalid file format. only .jpg, .jpeg, .png, .pdf are allowed")
	ErrFileSizeExceeded   = errors.New("file size exceeds limit")
)

// ValidationError names the offending field. It matches ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func missingField(field string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Missing required field: %s", field)}
}

func invalidField(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
