// Package dataset provides the processing service that turns uploaded
// tabular files into analyzed dataset records: parse, coerce, profile,
// persist.
package dataset

import (
	"context"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"datalens/adapters/tabular"
	"datalens/domain/core"
	"datalens/domain/dataset"
	"datalens/domain/eda"
	"datalens/internal"
	internaleda "datalens/internal/eda"
	"datalens/internal/errors"
	"datalens/ports"
)

// Processor handles dataset file processing and analysis
type Processor struct {
	datasets ports.DatasetRepository
	reports  ports.ReportRepository
	analyzer *internaleda.Analyzer
	logger   *internal.Logger

	histogramBins int
	missingChunks int
}

// Options tunes the chart helpers the processor computes alongside reports
type Options struct {
	HistogramBins int
	MissingChunks int
}

// NewProcessor creates a dataset processor. Both repositories may be nil
// for offline use (the CLI analyzer), in which case nothing is persisted.
func NewProcessor(datasets ports.DatasetRepository, reports ports.ReportRepository, engineCfg internaleda.Config, opts Options) *Processor {
	if opts.HistogramBins < 1 {
		opts.HistogramBins = 12
	}
	if opts.MissingChunks < 1 {
		opts.MissingChunks = 10
	}
	return &Processor{
		datasets:      datasets,
		reports:       reports,
		analyzer:      internaleda.NewAnalyzer(engineCfg),
		logger:        internal.NewDefaultLogger(),
		histogramBins: opts.HistogramBins,
		missingChunks: opts.MissingChunks,
	}
}

// ProcessFile parses a tabular file, analyzes it, and persists the dataset
// record together with its first analysis report. The record moves through
// processing -> ready, or processing -> failed when parsing breaks.
func (p *Processor) ProcessFile(ctx context.Context, filePath, displayName, targetColumn string) (*dataset.Dataset, *dataset.AnalysisReport, error) {
	p.logger.Info("[Processor] processing file: %s", filePath)

	ds := dataset.New(displayName)
	ds.FilePath = filePath
	ds.TargetColumn = targetColumn
	if info, err := os.Stat(filePath); err == nil {
		ds.FileSize = info.Size()
	}
	if err := p.createRecord(ctx, ds); err != nil {
		return nil, nil, err
	}

	columns, err := tabular.NewDataReader(filePath).ReadColumns()
	if err != nil {
		p.markFailed(ctx, ds, err)
		return nil, nil, errors.Wrapf(err, "failed to parse %s", filePath)
	}

	report, err := p.analyzeColumns(ctx, ds, columns, targetColumn)
	if err != nil {
		p.markFailed(ctx, ds, err)
		return nil, nil, err
	}

	ds.RecordCount = report.Report.Summary.TotalRows
	ds.FieldCount = report.Report.Summary.TotalColumns
	ds.MissingRate = report.Report.Summary.MissingPct / 100
	ds.Status = dataset.StatusReady
	if p.datasets != nil {
		if err := p.datasets.Update(ctx, ds); err != nil {
			return nil, nil, errors.Wrap(err, "failed to update dataset record")
		}
	}

	p.logger.Info("[Processor] dataset %s ready: %d rows, %d columns, %d warnings",
		ds.ID, ds.RecordCount, ds.FieldCount, len(report.Report.Warnings))
	return ds, report, nil
}

// Reanalyze re-runs the analysis of a stored dataset, honoring a new
// target column, and persists a fresh report.
func (p *Processor) Reanalyze(ctx context.Context, id core.DatasetID, targetColumn string) (*dataset.AnalysisReport, error) {
	if p.datasets == nil {
		return nil, errors.InternalError("no dataset repository configured")
	}

	ds, err := p.datasets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ds.IsReady() {
		return nil, errors.ValidationError("dataset is not ready for analysis")
	}

	columns, err := tabular.NewDataReader(ds.FilePath).ReadColumns()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to re-read %s", ds.FilePath)
	}

	if targetColumn == "" {
		targetColumn = ds.TargetColumn
	}
	return p.analyzeColumns(ctx, ds, columns, targetColumn)
}

// LoadColumns re-reads the stored file of a ready dataset, for the chart
// endpoints that operate on raw values.
func (p *Processor) LoadColumns(ctx context.Context, id core.DatasetID) ([]eda.DataColumn, error) {
	if p.datasets == nil {
		return nil, errors.InternalError("no dataset repository configured")
	}
	ds, err := p.datasets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return tabular.NewDataReader(ds.FilePath).ReadColumns()
}

// Histograms computes distribution charts for every numerical column,
// one goroutine per column.
func (p *Processor) Histograms(ctx context.Context, columns []eda.DataColumn) (map[string][]eda.HistogramBin, error) {
	g, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex
	histograms := make(map[string][]eda.HistogramBin)

	for _, col := range columns {
		if internaleda.InferColumnType(col.Values, 0) != eda.TypeNumerical {
			continue
		}
		g.Go(func() error {
			bins := internaleda.Histogram(col.Values, p.histogramBins)
			mu.Lock()
			histograms[col.Name] = bins
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return histograms, nil
}

// MissingPatterns segments missingness over the row order for every column
func (p *Processor) MissingPatterns(columns []eda.DataColumn) []eda.MissingPattern {
	return internaleda.MissingPatterns(columns, p.missingChunks)
}

func (p *Processor) analyzeColumns(ctx context.Context, ds *dataset.Dataset, columns []eda.DataColumn, targetColumn string) (*dataset.AnalysisReport, error) {
	result := p.analyzer.Analyze(columns, targetColumn)

	report := dataset.NewAnalysisReport(ds.ID, targetColumn, result)
	if p.reports != nil {
		if err := p.reports.Create(ctx, report); err != nil {
			return nil, errors.Wrap(err, "failed to store analysis report")
		}
	}
	return report, nil
}

func (p *Processor) createRecord(ctx context.Context, ds *dataset.Dataset) error {
	if p.datasets == nil {
		return nil
	}
	if err := p.datasets.Create(ctx, ds); err != nil {
		return errors.Wrap(err, "failed to create dataset record")
	}
	return nil
}

func (p *Processor) markFailed(ctx context.Context, ds *dataset.Dataset, cause error) {
	ds.Status = dataset.StatusFailed
	ds.ErrorMessage = cause.Error()
	if p.datasets == nil {
		return
	}
	if err := p.datasets.UpdateStatus(ctx, ds.ID, dataset.StatusFailed, cause.Error()); err != nil {
		p.logger.Error("[Processor] failed to mark dataset %s as failed: %v", ds.ID, err)
	}
}
