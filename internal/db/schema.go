package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete sqlite schema.
//
// This is the single source of truth for the sqlite store. Tests load it via
// GetSchemaSQL() instead of declaring their own tables.
//
// Each row holds one whole collection as a JSON document.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS collections (
	name TEXT PRIMARY KEY,
	body TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema applies SchemaSQL. Safe to run on every open.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
