package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSlotsTable = `
CREATE TABLE IF NOT EXISTS winemap_slots (
	name       TEXT PRIMARY KEY,
	blob       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresSlot keeps the slot as one row of the winemap_slots table.
type PostgresSlot struct {
	pool *pgxpool.Pool
	name string
}

// NewPostgresSlot connects to dsn and makes sure the slots table exists.
func NewPostgresSlot(ctx context.Context, dsn, name string) (*PostgresSlot, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if _, err := pool.Exec(ctx, createSlotsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create slots table: %w", err)
	}
	return &PostgresSlot{pool: pool, name: name}, nil
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx, `SELECT blob FROM winemap_slots WHERE name = $1`, s.name).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.name, err)
	}
	return blob, nil
}

func (s *PostgresSlot) Write(ctx context.Context, blob []byte) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO winemap_slots (name, blob, updated_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET blob = EXCLUDED.blob, updated_at = EXCLUDED.updated_at`,
		s.name, blob)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.name, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresSlot) Close() {
	s.pool.Close()
}
