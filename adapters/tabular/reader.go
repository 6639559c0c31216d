// Package tabular reads CSV and Excel files into the column-oriented shape
// the analysis engine consumes.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"datalens/domain/eda"
	"datalens/internal/errors"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	coercer  *Coercer
}

// NewDataReader creates a data reader for the given path, picking the
// parser from the file extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		coercer:  NewCoercer(),
	}
}

// ReadColumns parses the file into named columns of coerced values. The
// first row supplies the column names; missing header cells get positional
// names. Column types are left empty for the analyzer to infer. Short data
// rows are padded with missing cells so every column keeps the full row
// count.
func (r *DataReader) ReadColumns() ([]eda.DataColumn, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("file %s", r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.UnsupportedFormat(r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return r.buildColumns(rows), nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // tolerate ragged rows, padded later

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV row")
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open Excel file %s", r.filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ValidationError("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	return rows, nil
}

// buildColumns pivots row-oriented raw cells into coerced columns
func (r *DataReader) buildColumns(rows [][]string) []eda.DataColumn {
	if len(rows) == 0 {
		return []eda.DataColumn{}
	}

	headers := rows[0]
	for i, h := range headers {
		if strings.TrimSpace(h) == "" {
			headers[i] = "column_" + strconv.Itoa(i+1)
		} else {
			headers[i] = strings.TrimSpace(h)
		}
	}

	dataRows := rows[1:]
	columns := make([]eda.DataColumn, len(headers))
	for col := range headers {
		values := make([]eda.Value, len(dataRows))
		for row, record := range dataRows {
			if col < len(record) {
				values[row] = r.coercer.CoerceCell(record[col])
			} else {
				values[row] = eda.NewMissingValue()
			}
		}
		columns[col] = eda.DataColumn{Name: headers[col], Values: values}
	}
	return columns
}
