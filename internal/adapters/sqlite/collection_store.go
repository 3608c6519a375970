// Package sqlite implements secondary.CollectionStore on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/esys/internal/models"
)

// CollectionStore keeps each collection as one row of the collections table.
type CollectionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCollectionStore creates a new SQLite collection store.
// The schema must already be applied (see db.Open).
func NewCollectionStore(db *sql.DB, logger *slog.Logger) *CollectionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectionStore{db: db, logger: logger}
}

// Load decodes the named collection into dest. A missing row or an
// undecodable body leaves dest zeroed.
func (s *CollectionStore) Load(ctx context.Context, name string, dest any) error {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM collections WHERE name = ?", name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", name, err)
	}

	if err := models.Decode([]byte(body), dest); err != nil {
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

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (name, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

// CheckReady pings the database.
func (s *CollectionStore) CheckReady(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
