package storage

import (
	"context"
	"log/slog"
)

// Backend names accepted by Open
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend
type Options struct {
	Backend     string
	Dir         string
	RedisURL    string
	DatabaseURL string
	Logger      *slog.Logger
}

// Open creates the port named by opts.Backend
func Open(ctx context.Context, opts Options) (Port, error) {
	switch opts.Backend {
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, &BackendError{Backend: BackendFile, Message: "data directory is required"}
		}
		return NewFileStore(opts.Dir, opts.Logger), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, &BackendError{Backend: BackendRedis, Message: "redis url is required"}
		}
		store, err := ConnectRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, &BackendError{Backend: BackendRedis, Message: "connect failed", Cause: err}
		}
		return store, nil
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, &BackendError{Backend: BackendPostgres, Message: "database url is required"}
		}
		store, err := ConnectPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, &BackendError{Backend: BackendPostgres, Message: "connect failed", Cause: err}
		}
		return store, nil
	}
	return nil, &BackendError{Backend: opts.Backend, Message: "unknown backend"}
}
