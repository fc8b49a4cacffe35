package utils

import (
	"errors"
	"fmt"
)

var (
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrNoPhoto            = errors.New("no photo uploaded for this survey")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
)

// ValidationError reports the first submission rule a request breaks. Field
// names the offending form field so the client can surface it next to the
// input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RequiredFieldError builds the "<field> is required" validation failure.
func RequiredFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
}

func FieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
