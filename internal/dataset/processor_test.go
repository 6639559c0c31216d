package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/domain/core"
	"datalens/domain/dataset"
	"datalens/domain/eda"
	internaleda "datalens/internal/eda"
	"datalens/ports"
)

// memoryDatasetRepo is an in-memory DatasetRepository for service tests
type memoryDatasetRepo struct {
	records map[core.DatasetID]*dataset.Dataset
	order   []core.DatasetID
}

func newMemoryDatasetRepo() *memoryDatasetRepo {
	return &memoryDatasetRepo{records: make(map[core.DatasetID]*dataset.Dataset)}
}

func (m *memoryDatasetRepo) Create(_ context.Context, ds *dataset.Dataset) error {
	copied := *ds
	m.records[ds.ID] = &copied
	m.order = append(m.order, ds.ID)
	return nil
}

func (m *memoryDatasetRepo) GetByID(_ context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	ds, ok := m.records[id]
	if !ok {
		return nil, os.ErrNotExist
	}
	copied := *ds
	return &copied, nil
}

func (m *memoryDatasetRepo) List(_ context.Context, limit int) ([]*dataset.Dataset, error) {
	var out []*dataset.Dataset
	for _, id := range m.order {
		if len(out) == limit {
			break
		}
		copied := *m.records[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memoryDatasetRepo) Update(_ context.Context, ds *dataset.Dataset) error {
	copied := *ds
	m.records[ds.ID] = &copied
	return nil
}

func (m *memoryDatasetRepo) UpdateStatus(_ context.Context, id core.DatasetID, status dataset.Status, errorMessage string) error {
	ds, ok := m.records[id]
	if !ok {
		return os.ErrNotExist
	}
	ds.Status = status
	ds.ErrorMessage = errorMessage
	return nil
}

func (m *memoryDatasetRepo) Delete(_ context.Context, id core.DatasetID) error {
	delete(m.records, id)
	return nil
}

// memoryReportRepo is an in-memory ReportRepository for service tests
type memoryReportRepo struct {
	reports []*dataset.AnalysisReport
}

func (m *memoryReportRepo) Create(_ context.Context, report *dataset.AnalysisReport) error {
	m.reports = append(m.reports, report)
	return nil
}

func (m *memoryReportRepo) GetByID(_ context.Context, id core.ReportID) (*dataset.AnalysisReport, error) {
	for _, r := range m.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, os.ErrNotExist
}

func (m *memoryReportRepo) GetLatestForDataset(_ context.Context, datasetID core.DatasetID) (*dataset.AnalysisReport, error) {
	for i := len(m.reports) - 1; i >= 0; i-- {
		if m.reports[i].DatasetID == datasetID {
			return m.reports[i], nil
		}
	}
	return nil, os.ErrNotExist
}

func (m *memoryReportRepo) ListForDataset(_ context.Context, datasetID core.DatasetID) ([]*dataset.AnalysisReport, error) {
	var out []*dataset.AnalysisReport
	for _, r := range m.reports {
		if r.DatasetID == datasetID {
			out = append(out, r)
		}
	}
	return out, nil
}

var _ ports.DatasetRepository = (*memoryDatasetRepo)(nil)
var _ ports.ReportRepository = (*memoryReportRepo)(nil)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestProcessor(datasets ports.DatasetRepository, reports ports.ReportRepository) *Processor {
	return NewProcessor(datasets, reports, internaleda.DefaultConfig(), Options{})
}

func TestProcessFile(t *testing.T) {
	csv := "age,income,city\n25,50000,berlin\n32,64000,hamburg\n41,NA,berlin\n29,58000,munich\n"
	path := writeTempCSV(t, csv)

	datasets := newMemoryDatasetRepo()
	reports := &memoryReportRepo{}
	processor := newTestProcessor(datasets, reports)

	ds, report, err := processor.ProcessFile(context.Background(), path, "people.csv", "")
	require.NoError(t, err)

	assert.Equal(t, dataset.StatusReady, ds.Status)
	assert.Equal(t, 4, ds.RecordCount)
	assert.Equal(t, 3, ds.FieldCount)
	assert.Equal(t, int64(len(csv)), ds.FileSize)
	assert.InDelta(t, 1.0/12, ds.MissingRate, 1e-9)

	stored, err := datasets.GetByID(context.Background(), ds.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.StatusReady, stored.Status)
	assert.Equal(t, int64(len(csv)), stored.FileSize)

	require.NotNil(t, report)
	assert.Equal(t, ds.ID, report.DatasetID)
	assert.Len(t, report.Report.Features, 3)

	latest, err := reports.GetLatestForDataset(context.Background(), ds.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, latest.ID)
}

func TestProcessFile_MissingFileMarksFailed(t *testing.T) {
	datasets := newMemoryDatasetRepo()
	processor := newTestProcessor(datasets, &memoryReportRepo{})

	_, _, err := processor.ProcessFile(context.Background(), "/nonexistent/data.csv", "data.csv", "")
	require.Error(t, err)

	all, err := datasets.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, dataset.StatusFailed, all[0].Status)
	assert.NotEmpty(t, all[0].ErrorMessage)
}

func TestProcessFile_OfflineWithoutRepositories(t *testing.T) {
	path := writeTempCSV(t, "x,y\n1,2\n3,4\n5,6\n")
	processor := newTestProcessor(nil, nil)

	ds, report, err := processor.ProcessFile(context.Background(), path, "data.csv", "")
	require.NoError(t, err)
	assert.Equal(t, dataset.StatusReady, ds.Status)
	assert.Len(t, report.Report.Features, 2)
}

func TestReanalyze_NewTarget(t *testing.T) {
	csv := "x,y,label\n1,2,1\n2,4,0\n3,6,1\n4,8,0\n"
	path := writeTempCSV(t, csv)

	datasets := newMemoryDatasetRepo()
	reports := &memoryReportRepo{}
	processor := newTestProcessor(datasets, reports)

	ds, first, err := processor.ProcessFile(context.Background(), path, "data.csv", "")
	require.NoError(t, err)
	assert.Nil(t, first.Report.Target)

	second, err := processor.Reanalyze(context.Background(), ds.ID, "label")
	require.NoError(t, err)
	require.NotNil(t, second.Report.Target)
	assert.Equal(t, "label", second.Report.Target.Name)

	// Both runs are kept, newest first.
	all, err := reports.ListForDataset(context.Background(), ds.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReanalyze_NotReady(t *testing.T) {
	datasets := newMemoryDatasetRepo()
	processor := newTestProcessor(datasets, &memoryReportRepo{})

	ds := dataset.New("stuck.csv")
	require.NoError(t, datasets.Create(context.Background(), ds))

	_, err := processor.Reanalyze(context.Background(), ds.ID, "")
	require.Error(t, err)
}

func TestHistograms_NumericalColumnsOnly(t *testing.T) {
	processor := newTestProcessor(nil, nil)

	columns := []eda.DataColumn{
		{Name: "n", Values: []eda.Value{
			eda.NewNumericValue(1), eda.NewNumericValue(2), eda.NewNumericValue(3),
		}},
		{Name: "c", Values: []eda.Value{
			eda.NewStringValue("a"), eda.NewStringValue("b"), eda.NewStringValue("a"),
		}},
	}

	histograms, err := processor.Histograms(context.Background(), columns)
	require.NoError(t, err)
	assert.Contains(t, histograms, "n")
	assert.NotContains(t, histograms, "c")
}
