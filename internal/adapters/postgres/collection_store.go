package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/esys/internal/models"
)

// CollectionStore keeps each collection as one JSONB row.
type CollectionStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewCollectionStore creates a new PostgreSQL collection store.
func NewCollectionStore(pool *pgxpool.Pool, logger *slog.Logger) *CollectionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectionStore{pool: pool, logger: logger}
}

// Load decodes the named collection into dest. A missing row or an
// undecodable body leaves dest zeroed.
func (s *CollectionStore) Load(ctx context.Context, name string, dest any) error {
	var body []byte
	err := s.pool.QueryRow(ctx, "SELECT body::text FROM collections WHERE name = $1", name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", name, err)
	}

	if err := models.Decode(body, dest); err != nil {
		s.logger.Warn("ignoring malformed collection row",
			slog.String("collection", name),
			slog.String("error", err.Error()))
	}
	return nil
}

// Save replaces the named collection with v.
func (s *CollectionStore) Save(ctx context.Context, name string, v any) error {
	body, err := models.Encode(v, false)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO collections (name, body, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		name, string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

// CheckReady pings the pool for readiness probes.
func (s *CollectionStore) CheckReady(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
