// Package jsonfile implements secondary.CollectionStore as one JSON file per
// collection inside a data directory.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/esys/internal/models"
)

// Store reads and writes <dir>/<collection>.json.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing a collection.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load decodes the collection file into dest. A missing, empty or malformed
// file leaves dest zeroed and is not an error.
func (s *Store) Load(ctx context.Context, name string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := models.Decode(data, dest); err != nil {
		s.logger.Warn("ignoring malformed collection file",
			slog.String("collection", name),
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
	return nil
}

// Save writes v as indented JSON, replacing the file atomically.
func (s *Store) Save(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := models.Encode(v, true)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, s.Path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
