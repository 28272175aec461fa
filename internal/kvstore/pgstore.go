package kvstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists documents in a single jsonb table using
// parameterized upserts. The schema is managed by goose migrations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle. The caller owns running
// migrations before first use.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a pgx connection and verifies it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// DB exposes the underlying handle for migrations.
func (p *PostgresStore) DB() *sql.DB {
	return p.db
}

// Read returns the document stored for key, or ErrKeyNotFound.
func (p *PostgresStore) Read(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT doc FROM documents WHERE key = $1`

	var doc []byte
	err := p.db.QueryRowContext(ctx, query, key).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read document %q: %w", key, err)
	}

	return doc, nil
}

// Write replaces the document stored for key.
func (p *PostgresStore) Write(ctx context.Context, key string, doc []byte) error {
	query := `
		INSERT INTO documents (key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`

	if _, err := p.db.ExecContext(ctx, query, key, doc); err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}

	return nil
}

// Delete removes the document for key. Deleting an absent key is not an error.
func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM documents WHERE key = $1`

	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete document %q: %w", key, err)
	}

	return nil
}

// Close closes the database connection.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
