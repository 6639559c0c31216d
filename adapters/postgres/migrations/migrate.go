// Package migrations creates the database schema. Statements are
// idempotent so the migrator can run on every deploy.
package migrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		original_filename TEXT NOT NULL,
		file_path TEXT,
		file_size BIGINT DEFAULT 0,
		display_name TEXT NOT NULL,
		record_count INTEGER DEFAULT 0,
		field_count INTEGER DEFAULT 0,
		missing_rate DOUBLE PRECISION DEFAULT 0,
		target_column TEXT,
		status TEXT NOT NULL DEFAULT 'processing',
		error_message TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS analysis_reports (
		id TEXT PRIMARY KEY,
		dataset_id TEXT NOT NULL REFERENCES datasets(id),
		target_column TEXT,
		report JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_reports_dataset ON analysis_reports(dataset_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_datasets_updated ON datasets(updated_at DESC)`,
}

// Run applies the schema to the connected database
func Run(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}
	return nil
}
