// Package server provides the live preview HTTP API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/pdf"
	"github.com/jonathan/resume-builder/internal/presets"
	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/transfer"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	// ErrPDFUnavailable is returned when no PDF printer is configured
	ErrPDFUnavailable = errors.New("pdf export is not configured")
	// ErrEntryNotFound is returned when a collection entry id does not exist
	ErrEntryNotFound = errors.New("entry not found")
)

// ErrPresetNotFound indicates an unknown preset key
type ErrPresetNotFound struct {
	Key string
}

func (e *ErrPresetNotFound) Error() string {
	return fmt.Sprintf("preset not found: %s", e.Key)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		presetErr     *ErrPresetNotFound
		importErr     *transfer.ImportError
		printErr      *pdf.PrintError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &importErr),
		errors.Is(err, types.ErrUnknownField),
		errors.Is(err, types.ErrUnknownSection),
		errors.Is(err, state.ErrSectionType):
		return http.StatusBadRequest
	case errors.As(err, &presetErr), errors.Is(err, ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, presets.ErrNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, ErrPDFUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &printErr):
		return http.StatusBadGateway
	case errors.Is(err, transfer.ErrNotPersisted):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
