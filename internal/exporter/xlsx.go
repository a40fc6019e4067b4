package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"lcexport/internal/lightcurve"
)

// sheetName is the single worksheet conversion results land on.
const sheetName = "Sheet1"

// XLSXWriter writes conversion results as a spreadsheet.
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates a new spreadsheet writer instance
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger}
}

// WriteResult writes the result to an xlsx file: header row from the
// result's column names, one sheet row per surviving record.
func (w *XLSXWriter) WriteResult(filePath string, result *lightcurve.Result) error {
	w.logger.Info("Writing XLSX file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(result.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(result.Columns))
	for i, name := range result.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range result.Records {
		row := make([]interface{}, len(rec))
		for j, v := range rec {
			row[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save xlsx: %w", err)
	}
	return nil
}
