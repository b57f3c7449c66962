// Package transfer exports the resume document as a JSON file and imports
// one back.
package transfer

import (
	"errors"
	"fmt"
)

// ErrNotPersisted is returned by Import when the document was replaced but
// could not be saved. The imported document is still returned.
var ErrNotPersisted = errors.New("imported document was not saved")

// ImportError describes why an import was rejected. The document is left
// unchanged whenever an ImportError is returned.
type ImportError struct {
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("import failed: %s", e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
