// package formatter writes playlist video records to spreadsheet files (XLSX, with CSV as an alternative)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/desertthunder/ytsheet/internal/shared"
)

// SheetName is the name of the single worksheet in the workbook.
const SheetName = "Playlist Videos"

// FilenameSuffix is appended to the sanitized playlist title to form the default filename.
const FilenameSuffix = "_videos.xlsx"

// Column describes one spreadsheet column.
type Column struct {
	Header string
	Width  float64
}

// Columns lists the spreadsheet columns in order.
var Columns = []Column{
	{Header: "channel", Width: 20},
	{Header: "title", Width: 40},
	{Header: "description", Width: 50},
	{Header: "link", Width: 40},
	{Header: "watched", Width: 15},
}

// Headers returns the header row.
func Headers() []string {
	headers := make([]string, len(Columns))
	for i, c := range Columns {
		headers[i] = c.Header
	}
	return headers
}

// SanitizeFilename replaces every rune that is not an ASCII letter, digit, space, underscore or hyphen with "_".
//
// Replacement is one for one, so the result has as many runes as the title.
func SanitizeFilename(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// OutputFilename derives the default spreadsheet filename from a playlist title.
func OutputFilename(title string) string {
	return SanitizeFilename(title) + FilenameSuffix
}

// IsCSV reports whether path should be written as CSV rather than XLSX.
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// WriteSpreadsheet writes records to explicit, or to [OutputFilename] of title when explicit is empty.
//
// An explicit name is used verbatim. Names ending in .csv produce CSV; everything else is XLSX.
// The file is replaced atomically and its path is returned.
func WriteSpreadsheet(records []models.VideoRecord, title, explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = OutputFilename(title)
	}

	if IsCSV(path) {
		data, err := ExportToCSV(records)
		if err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
		if err := shared.WriteFileAtomic(path, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		return path, nil
	}

	if err := WriteXLSX(records, path); err != nil {
		return "", err
	}
	return path, nil
}

// row flattens a record into column order.
func row(r models.VideoRecord) []any {
	return []any{r.Channel, r.Title, r.Description, r.Link, r.Watched}
}

// ExportToCSV converts records to CSV with the spreadsheet's header and column order.
func ExportToCSV(records []models.VideoRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(Headers()); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range records {
		record := []string{r.Channel, r.Title, r.Description, r.Link, strings.ToUpper(strconv.FormatBool(r.Watched))}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
