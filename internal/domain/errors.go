package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	// Both match ErrNotFound under errors.Is.
	ErrPostNotFound    = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
)

// Issue describes a single field-level validation failure.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// ValidationError carries every issue found in a request payload.
// It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		if len(is.Path) == 0 {
			msgs[i] = is.Message
			continue
		}
		msgs[i] = strings.Join(is.Path, ".") + ": " + is.Message
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError builds a ValidationError holding a single issue.
func NewValidationError(code, message string, path ...string) *ValidationError {
	if path == nil {
		path = []string{}
	}
	return &ValidationError{Issues: []Issue{{Code: code, Path: path, Message: message}}}
}
