package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"datalens/domain/core"
	"datalens/domain/dataset"
	"datalens/internal/errors"
	"datalens/ports"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// Create inserts a new dataset into the database
func (r *datasetRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	query := `INSERT INTO datasets (
		id, original_filename, file_path, file_size, display_name,
		record_count, field_count, missing_rate, target_column,
		status, error_message, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
	)`

	_, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.FilePath, ds.FileSize, ds.DisplayName,
		ds.RecordCount, ds.FieldCount, ds.MissingRate, ds.TargetColumn,
		ds.Status, ds.ErrorMessage, ds.CreatedAt, ds.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}
	return nil
}

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	query := `SELECT
		id, original_filename, COALESCE(file_path, '') as file_path,
		COALESCE(file_size, 0) as file_size, display_name,
		COALESCE(record_count, 0) as record_count, COALESCE(field_count, 0) as field_count,
		COALESCE(missing_rate, 0.0) as missing_rate, COALESCE(target_column, '') as target_column,
		status, COALESCE(error_message, '') as error_message, created_at, updated_at
	FROM datasets WHERE id = $1`

	var ds dataset.Dataset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ds.ID, &ds.OriginalFilename, &ds.FilePath, &ds.FileSize, &ds.DisplayName,
		&ds.RecordCount, &ds.FieldCount, &ds.MissingRate, &ds.TargetColumn,
		&ds.Status, &ds.ErrorMessage, &ds.CreatedAt, &ds.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound(fmt.Sprintf("dataset %s", id))
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return &ds, nil
}

// List retrieves the most recently updated datasets
func (r *datasetRepository) List(ctx context.Context, limit int) ([]*dataset.Dataset, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	query := `SELECT
		id, original_filename, COALESCE(file_path, '') as file_path,
		COALESCE(file_size, 0) as file_size, display_name,
		COALESCE(record_count, 0) as record_count, COALESCE(field_count, 0) as field_count,
		COALESCE(missing_rate, 0.0) as missing_rate, COALESCE(target_column, '') as target_column,
		status, COALESCE(error_message, '') as error_message, created_at, updated_at
	FROM datasets ORDER BY updated_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*dataset.Dataset
	for rows.Next() {
		var ds dataset.Dataset
		err := rows.Scan(
			&ds.ID, &ds.OriginalFilename, &ds.FilePath, &ds.FileSize, &ds.DisplayName,
			&ds.RecordCount, &ds.FieldCount, &ds.MissingRate, &ds.TargetColumn,
			&ds.Status, &ds.ErrorMessage, &ds.CreatedAt, &ds.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		datasets = append(datasets, &ds)
	}
	return datasets, rows.Err()
}

// Update persists the mutable fields of a dataset record
func (r *datasetRepository) Update(ctx context.Context, ds *dataset.Dataset) error {
	query := `UPDATE datasets SET
		display_name = $2, file_size = $3, record_count = $4, field_count = $5,
		missing_rate = $6, target_column = $7, status = $8, error_message = $9,
		updated_at = NOW()
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		ds.ID, ds.DisplayName, ds.FileSize, ds.RecordCount, ds.FieldCount,
		ds.MissingRate, ds.TargetColumn, ds.Status, ds.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to update dataset: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.NotFound(fmt.Sprintf("dataset %s", ds.ID))
	}
	return nil
}

// UpdateStatus transitions a dataset's processing state
func (r *datasetRepository) UpdateStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMessage string) error {
	query := `UPDATE datasets SET status = $2, error_message = $3, updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, status, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update dataset status: %w", err)
	}
	return nil
}

// Delete removes a dataset and its reports
func (r *datasetRepository) Delete(ctx context.Context, id core.DatasetID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM analysis_reports WHERE dataset_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis reports: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	return nil
}
