package storage

import "fmt"

// CorruptDataError is returned by Load when stored content cannot be decoded
type CorruptDataError struct {
	Message string
	Cause   error
}

func (e *CorruptDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corrupt data: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("corrupt data: %s", e.Message)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Cause
}

// BackendError is returned by Open for an unknown or misconfigured backend
type BackendError struct {
	Backend string
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage backend %q: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage backend %q: %s", e.Backend, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}
