// Package export serialises report tables for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/kaizen-academy/kaizen-admin/internal/reports"
)

// WriteCSV emits the table headers followed by every row.
func WriteCSV(w io.Writer, table reports.Table) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// FileName builds the download name for a category export.
func FileName(category reports.Category, now time.Time, ext string) string {
	return fmt.Sprintf("kaizen-%s-report-%s.%s", category, now.Format("20060102"), ext)
}
