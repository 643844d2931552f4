package tools

import "fmt"

// ErrorKind classifies an adapter failure.
type ErrorKind string

const (
	ErrArithmetic  ErrorKind = "arithmetic"
	ErrTranslation ErrorKind = "translation"
	ErrModel       ErrorKind = "model"
	ErrPolicy      ErrorKind = "policy"
)

// AdapterError is the failure a single capability call reports. It is caught
// at the level of one sub-task and never aborts the rest of a plan.
type AdapterError struct {
	Capability string
	Kind       ErrorKind
	Err        error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Capability, e.Kind, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
