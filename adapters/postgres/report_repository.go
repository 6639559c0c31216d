package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"datalens/domain/core"
	"datalens/domain/dataset"
	"datalens/internal/errors"
	"datalens/ports"
)

// reportRepository implements the ReportRepository interface. The analysis
// report body is stored as a JSONB column since it is read and written
// wholesale.
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &reportRepository{db: db}
}

// Create inserts an analysis report
func (r *reportRepository) Create(ctx context.Context, report *dataset.AnalysisReport) error {
	body, err := json.Marshal(report.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report body: %w", err)
	}

	query := `INSERT INTO analysis_reports (id, dataset_id, target_column, report, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query, report.ID, report.DatasetID, report.Target, body, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create analysis report: %w", err)
	}
	return nil
}

// GetByID retrieves one report
func (r *reportRepository) GetByID(ctx context.Context, id core.ReportID) (*dataset.AnalysisReport, error) {
	query := `SELECT id, dataset_id, COALESCE(target_column, '') as target_column, report, created_at
		FROM analysis_reports WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetLatestForDataset retrieves the newest report of a dataset
func (r *reportRepository) GetLatestForDataset(ctx context.Context, datasetID core.DatasetID) (*dataset.AnalysisReport, error) {
	query := `SELECT id, dataset_id, COALESCE(target_column, '') as target_column, report, created_at
		FROM analysis_reports WHERE dataset_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, datasetID))
}

// ListForDataset retrieves all reports of a dataset, newest first
func (r *reportRepository) ListForDataset(ctx context.Context, datasetID core.DatasetID) ([]*dataset.AnalysisReport, error) {
	query := `SELECT id, dataset_id, COALESCE(target_column, '') as target_column, report, created_at
		FROM analysis_reports WHERE dataset_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis reports: %w", err)
	}
	defer rows.Close()

	var reports []*dataset.AnalysisReport
	for rows.Next() {
		var report dataset.AnalysisReport
		var body []byte
		if err := rows.Scan(&report.ID, &report.DatasetID, &report.Target, &body, &report.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if err := json.Unmarshal(body, &report.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report body: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

func (r *reportRepository) scanOne(row *sql.Row) (*dataset.AnalysisReport, error) {
	var report dataset.AnalysisReport
	var body []byte

	err := row.Scan(&report.ID, &report.DatasetID, &report.Target, &body, &report.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("analysis report")
		}
		return nil, fmt.Errorf("failed to get analysis report: %w", err)
	}
	if err := json.Unmarshal(body, &report.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report body: %w", err)
	}
	return &report, nil
}
