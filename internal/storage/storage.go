// Package storage persists the resume document behind a small port with
// file, memory, Redis and PostgreSQL adapters.
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/jonathan/resume-builder/internal/types"
)

// StorageKey is the fixed key the document is stored under in every backend
const StorageKey = "devresume_data"

// ErrNotFound is returned by Load when nothing has been saved yet
var ErrNotFound = errors.New("no saved document")

// Port is a key-value persistence backend holding a single document
type Port interface {
	Save(ctx context.Context, doc *types.Document) error
	Load(ctx context.Context) (*types.Document, error)
	Clear(ctx context.Context) error
}

// Pinger is implemented by ports that can check their backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Close releases the resources held by p when it has any
func Close(p Port) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func decode(data []byte) (*types.Document, error) {
	doc, err := types.ParseDocument(data)
	if err != nil {
		return nil, &CorruptDataError{
			Message: "stored document is not valid JSON",
			Cause:   err,
		}
	}
	return doc, nil
}
