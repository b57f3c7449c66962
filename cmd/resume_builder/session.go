package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/presets"
	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/storage"
)

// session is the wiring every command shares: config, logger, the store and
// its persistence, with any saved document already loaded.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *state.Store
	port    storage.Port
	service *storage.Service
}

// loadConfig resolves defaults, the config file, the environment and flags,
// in that order of increasing precedence
func loadConfig() (config.Config, error) {
	cfg := config.Defaults()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return config.Config{}, err
	}
	if storageFlag != "" {
		cfg.Storage = storageFlag
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openSession loads config, opens storage and restores the saved document
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger(os.Stderr, cfg.Verbose)

	port, err := storage.Open(ctx, cfg.StorageOptions(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	store := state.New(state.WithLogger(logger))
	service := storage.NewService(store, port, storage.WithServiceLogger(logger))
	if service.Load(ctx) {
		logger.Debug("restored saved document", "backend", cfg.Storage)
	}

	return &session{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		port:    port,
		service: service,
	}, nil
}

// Close releases the storage backend
func (s *session) Close() {
	if err := storage.Close(s.port); err != nil {
		s.logger.Warn("failed to close storage", "error", err)
	}
}

// catalog returns the configured preset catalog
func (s *session) catalog() (*presets.StaticCatalog, error) {
	if s.cfg.PresetsFile != "" {
		return presets.LoadFile(s.cfg.PresetsFile)
	}
	return presets.Embedded()
}
