package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kaizen-academy/kaizen-admin/internal/reports"
)

func sampleTable() reports.Table {
	return reports.Table{
		Headers: []string{"Branch", "Students", "Revenue"},
		Rows: [][]string{
			{"Pune Central", "3", "8000.00"},
			{"Chennai Marina, East", "3", "9500.00"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteCSV(buf, sampleTable()); err != nil {
		t.Fatalf("csv error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and two rows, got %d", len(records))
	}
	if records[2][0] != "Chennai Marina, East" {
		t.Fatalf("unexpected quoted cell %q", records[2][0])
	}
}

func TestWriteXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WriteXLSX(buf, "Branch", sampleTable()); err != nil {
		t.Fatalf("xlsx error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Branch")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][2] != "Revenue" || rows[1][0] != "Pune Central" {
		t.Fatalf("unexpected contents %v", rows)
	}
}

func TestFileName(t *testing.T) {
	got := FileName(reports.CategoryFinancial, time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC), "xlsx")
	if got != "kaizen-financial-report-20260217.xlsx" {
		t.Fatalf("unexpected file name %q", got)
	}
}
