package contribution

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRoundNotFound     = errors.New("contribution round not found")
	ErrNoActiveRound     = errors.New("no active contribution round")
	ErrRoundNotActive    = errors.New("contribution round is not active")
	ErrNotSubject        = errors.New("subscription is not subject to the round")
	ErrInvalidStatus     = errors.New("invalid round status")
	ErrInvalidTransition = errors.New("invalid round status transition")
	ErrLocked            = errors.New("another status change is in progress")
)

// Form field names used in validation errors
const (
	FieldSelection   = "selection"
	FieldOtherAmount = "other_amount"
)

// FieldError is a user facing message bound to one form field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects the field errors of a rejected submission
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Field returns the first message for field, or ""
func (e *ValidationError) Field(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Map returns the messages keyed by field
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Message
		}
	}
	return out
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ActivationBlockedError is returned when a round cannot be activated because
// another round is active already
type ActivationBlockedError struct {
	Round  string
	Active string
}

func (e *ActivationBlockedError) Error() string {
	return fmt.Sprintf(
		"Beitragsrunde konnte nicht aktiviert werden, weil bereits eine andere Beitragsrunde (%s) aktiv ist.",
		e.Active,
	)
}
