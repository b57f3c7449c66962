package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// tempFilePrefix marks in-flight atomic writes
	tempFilePrefix = ".devresume-tmp-"
	fileMode       = 0o644
)

var (
	_ Port   = (*FileStore)(nil)
	_ Pinger = (*FileStore)(nil)
)

// FileStore keeps the document in <dir>/devresume_data.json
type FileStore struct {
	dir  string
	path string

	mu          sync.Mutex
	lastWritten []byte
	logger      *slog.Logger
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		dir:    dir,
		path:   filepath.Join(dir, StorageKey+".json"),
		logger: logger,
	}
}

// Path returns the file the document is stored in
func (f *FileStore) Path() string {
	return f.path
}

// Save writes the document atomically
func (f *FileStore) Save(_ context.Context, doc *types.Document) error {
	data, err := types.MarshalDocument(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := writeFileAtomic(f.path, data, fileMode); err != nil {
		return err
	}
	f.lastWritten = data
	return nil
}

// Load reads the document or returns ErrNotFound
func (f *FileStore) Load(_ context.Context) (*types.Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return decode(data)
}

// Clear removes the document file
func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", f.path, err)
	}
	f.lastWritten = nil
	return nil
}

// Ping checks that the data directory is writable
func (f *FileStore) Ping(_ context.Context) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	probe, err := os.CreateTemp(f.dir, tempFilePrefix+"probe-*")
	if err != nil {
		return fmt.Errorf("data directory is not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

// Watch calls fn with the decoded document whenever the file is changed by
// someone other than this FileStore. It blocks until ctx is done.
func (f *FileStore) Watch(ctx context.Context, fn func(*types.Document)) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: atomic renames replace the file's inode
	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", f.dir, err)
	}

	var lastSeen []byte
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger.Error("fsnotify error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			data, err := os.ReadFile(f.path)
			if err != nil || len(data) == 0 {
				continue
			}
			if f.isOwnWrite(data) || bytes.Equal(data, lastSeen) {
				continue
			}
			lastSeen = data

			doc, err := decode(data)
			if err != nil {
				f.logger.Warn("ignoring external change", "path", f.path, "error", err)
				continue
			}
			f.logger.Debug("document changed on disk", "path", f.path)
			fn(doc)
		}
	}
}

func (f *FileStore) isOwnWrite(data []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return bytes.Equal(data, f.lastWritten)
}

// writeFileAtomic writes data to a temp file in the same directory and renames
// it over filename, so readers never see a partial document.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
