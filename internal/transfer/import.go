package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// MaxImportSize bounds the bytes read from an import source
const MaxImportSize = 5 << 20

// ImportResult is delivered once by ImportAsync
type ImportResult struct {
	Document *types.Document
	Err      error
}

// Importer replaces the store's document with imported data and persists it
type Importer struct {
	store   *state.Store
	service *storage.Service
	logger  *slog.Logger
}

// NewImporter creates an Importer. service may be nil to skip persistence.
func NewImporter(store *state.Store, service *storage.Service, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{store: store, service: service, logger: logger}
}

// Import reads a serialized document from r, validates that it carries at
// least personal and meta, replaces the whole document with it and saves
// immediately. On an ImportError the document is unchanged. When only the
// save fails, the imported document is returned with an error wrapping
// ErrNotPersisted.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*types.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return nil, &ImportError{Message: "failed to read file", Cause: err}
	}
	if len(data) > MaxImportSize {
		return nil, &ImportError{Message: fmt.Sprintf("file larger than %d bytes", MaxImportSize)}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ImportError{Message: "import cancelled", Cause: err}
	}

	if err := schemas.ValidateDocument(data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &ImportError{Message: "invalid resume data format", Cause: err}
		}
		return nil, &ImportError{Message: "failed to parse JSON file", Cause: err}
	}

	doc, err := types.ParseDocument(data)
	if err != nil {
		return nil, &ImportError{Message: "failed to parse JSON file", Cause: err}
	}

	im.store.SetState(types.FullPartial(doc))
	im.logger.Info("document imported", "name", doc.Personal.FullName)
	if im.service != nil {
		if err := im.service.Persist(ctx); err != nil {
			return im.store.State(), fmt.Errorf("%w: %w", ErrNotPersisted, err)
		}
	}
	return im.store.State(), nil
}

// ImportAsync runs Import on its own goroutine. The returned channel receives
// exactly one result and is then closed.
func (im *Importer) ImportAsync(ctx context.Context, r io.Reader) <-chan ImportResult {
	out := make(chan ImportResult, 1)
	go func() {
		defer close(out)
		doc, err := im.Import(ctx, r)
		out <- ImportResult{Document: doc, Err: err}
	}()
	return out
}
