package formatter

import (
	"fmt"

	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/desertthunder/ytsheet/internal/shared"
	"github.com/xuri/excelize/v2"
)

// NewWorkbook builds a workbook with a single [SheetName] sheet holding the header row and one row per record.
//
// Watched is stored as a boolean cell. No styling is applied beyond column widths.
func NewWorkbook(records []models.VideoRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, col.Width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}

	headers := Headers()
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := row(r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// WriteXLSX writes records as an XLSX workbook to path, replacing any existing file atomically.
func WriteXLSX(records []models.VideoRecord, path string) error {
	f, err := NewWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := shared.NewAtomicWriter(path, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := f.Write(w); err != nil {
		w.Abort()
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	if err := w.Commit(); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
