package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	_ Port   = (*PostgresStore)(nil)
	_ Pinger = (*PostgresStore)(nil)
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS resume_documents (
	key        TEXT PRIMARY KEY,
	content    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps the document as one jsonb row keyed by StorageKey
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

// ConnectPostgres establishes a connection pool and creates the table
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create resume_documents table: %w", err)
	}

	return &PostgresStore{pool: pool, key: StorageKey}, nil
}

// Save upserts the document row
func (p *PostgresStore) Save(ctx context.Context, doc *types.Document) error {
	data, err := types.MarshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO resume_documents (key, content)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET content = $2, updated_at = NOW()`,
		p.key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Load returns the stored document or ErrNotFound
func (p *PostgresStore) Load(ctx context.Context) (*types.Document, error) {
	var content []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM resume_documents WHERE key = $1`,
		p.key,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return decode(content)
}

// Clear deletes the document row
func (p *PostgresStore) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM resume_documents WHERE key = $1`, p.key)
	if err != nil {
		return fmt.Errorf("failed to clear document: %w", err)
	}
	return nil
}

// Ping checks the connection
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the connection pool
func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
