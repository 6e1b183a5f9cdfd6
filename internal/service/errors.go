package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("message not found")
	ErrNoConversations = errors.New("no chat found")
	ErrNoBlobStore     = errors.New("blob store not configured")
)

// FieldError reports a request-level validation failure tied to one field,
// detected before any write reaches the store.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidReference(field string) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf("The selected %s is invalid.", field)}
}
