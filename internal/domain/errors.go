package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAuthenticated is returned by portal operations while logged out
	ErrNotAuthenticated = errors.New("session is not authenticated")

	// ErrChatUnavailable is returned when chat input arrives outside a loaded chatbot view
	ErrChatUnavailable = errors.New("chatbot view is not active")
)

// ValidationError reports required form fields that were left empty or malformed
type ValidationError struct {
	Form    FormName
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s form: %s: %s", e.Form, e.Message, strings.Join(e.Fields, ", "))
}

// MismatchError reports a password confirmation that does not match
type MismatchError struct {
	Form FormName
}

func (e *MismatchError) Error() string {
	return "Passwords do not match"
}

// UnknownViewError is raised for a sub-view name outside the portal set
type UnknownViewError struct {
	Name string
}

func (e *UnknownViewError) Error() string {
	return fmt.Sprintf("unknown view %q", e.Name)
}

// NotFoundError is raised by the content provider for an unrecognized template
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("content %q not found", e.Name)
}

// UserMessage returns the notice text for errors that are shown to the user.
// ok is false for errors that must only be logged.
func UserMessage(err error) (msg string, ok bool) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message, true
	}
	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		return mismatch.Error(), true
	}
	return "", false
}
