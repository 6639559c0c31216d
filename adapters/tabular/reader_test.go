package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"datalens/domain/eda"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func TestReadColumns_CSV(t *testing.T) {
	path := writeTempCSV(t, "age,income,city\n34,52000,Berlin\n29,NA,Hamburg\n41,61000,\n")

	columns, err := NewDataReader(path).ReadColumns()
	if err != nil {
		t.Fatalf("ReadColumns failed: %v", err)
	}

	if len(columns) != 3 {
		t.Fatalf("column count = %d, want 3", len(columns))
	}
	if columns[0].Name != "age" || columns[1].Name != "income" || columns[2].Name != "city" {
		t.Errorf("unexpected headers: %v, %v, %v", columns[0].Name, columns[1].Name, columns[2].Name)
	}
	for _, col := range columns {
		if len(col.Values) != 3 {
			t.Errorf("column %s has %d rows, want 3", col.Name, len(col.Values))
		}
	}

	if f, ok := columns[0].Values[0].Float(); !ok || f != 34 {
		t.Errorf("age[0] = %+v, want numeric 34", columns[0].Values[0])
	}
	if !columns[1].Values[1].IsMissing() {
		t.Errorf("income[1] = %+v, want missing (NA sentinel)", columns[1].Values[1])
	}
	if !columns[2].Values[2].IsMissing() {
		t.Errorf("city[2] = %+v, want missing (empty cell)", columns[2].Values[2])
	}
	if columns[2].Values[0].Str != "Berlin" {
		t.Errorf("city[0] = %+v, want Berlin", columns[2].Values[0])
	}
}

func TestReadColumns_RaggedRowsPadded(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2,3\n4,5\n")

	columns, err := NewDataReader(path).ReadColumns()
	if err != nil {
		t.Fatalf("ReadColumns failed: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("column count = %d, want 3", len(columns))
	}
	if !columns[2].Values[1].IsMissing() {
		t.Errorf("short row should pad with missing, got %+v", columns[2].Values[1])
	}
}

func TestReadColumns_BlankHeadersGetPositionalNames(t *testing.T) {
	path := writeTempCSV(t, "a,,c\n1,2,3\n")

	columns, err := NewDataReader(path).ReadColumns()
	if err != nil {
		t.Fatalf("ReadColumns failed: %v", err)
	}
	if columns[1].Name != "column_2" {
		t.Errorf("blank header name = %q, want column_2", columns[1].Name)
	}
}

func TestReadColumns_MissingFile(t *testing.T) {
	_, err := NewDataReader("/nonexistent/data.csv").ReadColumns()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCoerceCell(t *testing.T) {
	coercer := NewCoercer()

	cases := []struct {
		raw  string
		want eda.ValueKind
	}{
		{"42", eda.ValueNumeric},
		{"-3.14", eda.ValueNumeric},
		{"1e6", eda.ValueNumeric},
		{" 7 ", eda.ValueNumeric},
		{"hello", eda.ValueString},
		{"", eda.ValueMissing},
		{"NA", eda.ValueMissing},
		{"n/a", eda.ValueMissing},
		{"NULL", eda.ValueMissing},
		{"-", eda.ValueMissing},
		{"NaN", eda.ValueMissing},
	}

	for _, tc := range cases {
		if got := coercer.CoerceCell(tc.raw); got.Kind != tc.want {
			t.Errorf("CoerceCell(%q).Kind = %v, want %v", tc.raw, got.Kind, tc.want)
		}
	}
}
