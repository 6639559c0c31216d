// Package ports defines the persistence interfaces implemented by the
// adapters layer, so services depend on contracts instead of drivers.
package ports

import (
	"context"

	"datalens/domain/core"
	"datalens/domain/dataset"
)

// DatasetRepository stores dataset records
type DatasetRepository interface {
	Create(ctx context.Context, ds *dataset.Dataset) error
	GetByID(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error)
	List(ctx context.Context, limit int) ([]*dataset.Dataset, error)
	Update(ctx context.Context, ds *dataset.Dataset) error
	UpdateStatus(ctx context.Context, id core.DatasetID, status dataset.Status, errorMessage string) error
	Delete(ctx context.Context, id core.DatasetID) error
}

// ReportRepository stores analysis reports
type ReportRepository interface {
	Create(ctx context.Context, report *dataset.AnalysisReport) error
	GetByID(ctx context.Context, id core.ReportID) (*dataset.AnalysisReport, error)
	GetLatestForDataset(ctx context.Context, datasetID core.DatasetID) (*dataset.AnalysisReport, error)
	ListForDataset(ctx context.Context, datasetID core.DatasetID) ([]*dataset.AnalysisReport, error)
}
