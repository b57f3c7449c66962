package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/types"
)

// Service connects a Store to a Port. Persistence failures are logged and
// reported as false; they never stop the editor.
type Service struct {
	store  *state.Store
	port   Port
	logger *slog.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for persistence diagnostics
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service for store backed by port
func NewService(store *state.Store, port Port, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		port:   port,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Port returns the underlying persistence port
func (s *Service) Port() Port {
	return s.port
}

// Save writes the current document
func (s *Service) Save(ctx context.Context) bool {
	return s.Persist(ctx) == nil
}

// Persist writes the current document and returns the backend error, if any
func (s *Service) Persist(ctx context.Context) error {
	if err := s.port.Save(ctx, s.store.State()); err != nil {
		s.logger.Error("failed to save document", "error", err)
		return err
	}
	s.logger.Debug("document saved")
	return nil
}

// Load replaces the document with the saved one. It reports false when
// nothing is saved or the saved content is unusable; the document is then
// left unchanged.
func (s *Service) Load(ctx context.Context) bool {
	doc, err := s.port.Load(ctx)
	if err != nil {
		var corrupt *CorruptDataError
		switch {
		case errors.Is(err, ErrNotFound):
			s.logger.Debug("no saved document")
		case errors.As(err, &corrupt):
			s.logger.Warn("ignoring corrupt saved document", "error", err)
		default:
			s.logger.Error("failed to load document", "error", err)
		}
		return false
	}
	s.store.SetState(types.FullPartial(doc))
	s.logger.Debug("document loaded")
	return true
}

// Clear removes the saved document
func (s *Service) Clear(ctx context.Context) bool {
	if err := s.port.Clear(ctx); err != nil {
		s.logger.Error("failed to clear saved document", "error", err)
		return false
	}
	return true
}

// Available reports whether the backend can be used
func (s *Service) Available(ctx context.Context) bool {
	pinger, ok := s.port.(Pinger)
	if !ok {
		return true
	}
	if err := pinger.Ping(ctx); err != nil {
		s.logger.Warn("storage unavailable", "error", err)
		return false
	}
	return true
}

// EnableAutosave subscribes an Autosaver to the store so every notification
// schedules a save after delay. Stop on the returned Autosaver unsubscribes it.
func (s *Service) EnableAutosave(delay time.Duration) *Autosaver {
	a := NewAutosaver(delay, func() {
		s.Save(context.Background())
	})
	a.detach = s.store.Subscribe(func(*types.Document) {
		a.Schedule()
	})
	return a
}
