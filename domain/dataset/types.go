package dataset

import (
	"time"

	"datalens/domain/core"
	"datalens/domain/eda"
)

// Status represents the processing state of a dataset
type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

// Dataset represents an uploaded tabular dataset and its analysis state
type Dataset struct {
	ID core.DatasetID `json:"id"`

	// File information
	OriginalFilename string `json:"original_filename"`
	FilePath         string `json:"file_path,omitempty"`
	FileSize         int64  `json:"file_size"`

	DisplayName string `json:"display_name"`

	// Dataset statistics filled in after parsing
	RecordCount int     `json:"record_count"`
	FieldCount  int     `json:"field_count"`
	MissingRate float64 `json:"missing_rate"`

	// TargetColumn is the designated prediction target, if any
	TargetColumn string `json:"target_column,omitempty"`

	// Processing state
	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a new dataset record in the processing state
func New(originalFilename string) *Dataset {
	return &Dataset{
		ID:               core.DatasetID(core.NewID()),
		OriginalFilename: originalFilename,
		DisplayName:      originalFilename,
		Status:           StatusProcessing,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

// IsReady returns true if the dataset can be analyzed
func (d *Dataset) IsReady() bool {
	return d.Status == StatusReady
}

// AnalysisReport wraps an EDA report with its persistence identity
type AnalysisReport struct {
	ID        core.ReportID  `json:"id"`
	DatasetID core.DatasetID `json:"dataset_id"`
	Target    string         `json:"target,omitempty"`
	Report    eda.Report     `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewAnalysisReport creates a report record for a dataset
func NewAnalysisReport(datasetID core.DatasetID, target string, report eda.Report) *AnalysisReport {
	return &AnalysisReport{
		ID:        core.ReportID(core.NewID()),
		DatasetID: datasetID,
		Target:    target,
		Report:    report,
		CreatedAt: time.Now(),
	}
}
