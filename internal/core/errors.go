package core

import (
	"errors"
	"fmt"
)

// ValidationError marks user-correctable input problems. It is raised
// before any side effect happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid turn: " + e.Reason
}

var (
	ErrEmptyMessage = &ValidationError{Reason: "user message must not be empty"}
	ErrMissingURL   = &ValidationError{Reason: "url context is enabled but no url was provided"}
)

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// StoreWarning signals that the model call succeeded but writing the
// exchange back to one of the memory stores failed. The response is
// carried along so callers can still show it to the user.
type StoreWarning struct {
	Response string
	Err      error
}

func (w *StoreWarning) Error() string {
	return fmt.Sprintf("turn completed but persistence failed: %v", w.Err)
}

func (w *StoreWarning) Unwrap() error {
	return w.Err
}

func AsStoreWarning(err error) (*StoreWarning, bool) {
	var w *StoreWarning
	if errors.As(err, &w) {
		return w, true
	}
	return nil, false
}
