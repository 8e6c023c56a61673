package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/desertthunder/ytsheet/internal/models"
	th "github.com/desertthunder/ytsheet/internal/testing"
	"github.com/xuri/excelize/v2"
)

func testRecords() []models.VideoRecord {
	return []models.VideoRecord{
		models.NewVideoRecord(models.Video{
			ID:           "dQw4w9WgXcQ",
			ChannelTitle: "Rick Astley",
			Title:        "Never Gonna Give You Up",
			Description:  "The official video\nfor the 1987 hit",
		}),
		models.NewVideoRecord(models.Video{
			ID:           "9bZkp7q19f0",
			ChannelTitle: "officialpsy",
			Title:        "PSY - GANGNAM STYLE(강남스타일) M/V",
			Description:  "",
		}),
	}
}

func TestSanitizeFilename(t *testing.T) {
	tc := []struct {
		title string
		want  string
	}{
		{"My Mix", "My Mix"},
		{"Rock/Pop: 2024!", "Rock_Pop_ 2024_"},
		{"under_score-dash", "under_score-dash"},
		{"", ""},
		{"Café", "Caf_"},
		{"日本語", "___"},
		{"a.b\\c", "a_b_c"},
		{"tab\there", "tab_here"},
	}

	for _, tt := range tc {
		t.Run(tt.title, func(t *testing.T) {
			got := SanitizeFilename(tt.title)
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if utf8.RuneCountInString(got) != utf8.RuneCountInString(tt.title) {
				t.Errorf("expected rune count to be preserved for %q", tt.title)
			}
		})
	}

	t.Run("OutputFilename", func(t *testing.T) {
		if got := OutputFilename("My Mix"); got != "My Mix_videos.xlsx" {
			t.Errorf("unexpected filename %q", got)
		}
		if got := OutputFilename("Unknown playlist"); got != "Unknown playlist_videos.xlsx" {
			t.Errorf("unexpected filename %q", got)
		}
	})
}

func TestWriteSpreadsheet(t *testing.T) {
	t.Run("default filename", func(t *testing.T) {
		th.InTempDir(t)

		path, err := WriteSpreadsheet(testRecords(), "Rock/Pop", "")
		if err != nil {
			t.Fatalf("WriteSpreadsheet failed: %v", err)
		}
		if path != "Rock_Pop_videos.xlsx" {
			t.Errorf("expected Rock_Pop_videos.xlsx, got %s", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("explicit filename is used verbatim", func(t *testing.T) {
		dir := t.TempDir()
		explicit := filepath.Join(dir, "my:odd name.xlsx")

		path, err := WriteSpreadsheet(testRecords(), "ignored", explicit)
		if err != nil {
			t.Fatalf("WriteSpreadsheet failed: %v", err)
		}
		if path != explicit {
			t.Errorf("expected %s, got %s", explicit, path)
		}
		th.AssertFileExists(t, explicit)
	})

	t.Run("workbook layout", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.xlsx")
		if _, err := WriteSpreadsheet(testRecords(), "", path); err != nil {
			t.Fatalf("WriteSpreadsheet failed: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer f.Close()

		if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{SheetName}) {
			t.Errorf("expected only %q, got %v", SheetName, sheets)
		}

		rows, err := f.GetRows(SheetName)
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(rows))
		}
		if !reflect.DeepEqual(rows[0], []string{"channel", "title", "description", "link", "watched"}) {
			t.Errorf("unexpected header %v", rows[0])
		}

		want := []string{
			"Rick Astley",
			"Never Gonna Give You Up",
			"The official video\nfor the 1987 hit",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"FALSE",
		}
		if !reflect.DeepEqual(rows[1], want) {
			t.Errorf("unexpected first row %q", rows[1])
		}
		if rows[2][1] != "PSY - GANGNAM STYLE(강남스타일) M/V" {
			t.Errorf("unexpected title %q", rows[2][1])
		}

		for _, cell := range []string{"E2", "E3"} {
			typ, err := f.GetCellType(SheetName, cell)
			if err != nil {
				t.Fatalf("failed to read cell type: %v", err)
			}
			if typ != excelize.CellTypeBool {
				t.Errorf("expected %s to be boolean, got %v", cell, typ)
			}
		}

		widths := map[string]float64{"A": 20, "B": 40, "C": 50, "D": 40, "E": 15}
		for col, want := range widths {
			got, err := f.GetColWidth(SheetName, col)
			if err != nil {
				t.Fatalf("failed to read width of %s: %v", col, err)
			}
			if got != want {
				t.Errorf("column %s: expected width %v, got %v", col, want, got)
			}
		}
	})

	t.Run("no records writes header only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.xlsx")
		if _, err := WriteSpreadsheet(nil, "", path); err != nil {
			t.Fatalf("WriteSpreadsheet failed: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		defer f.Close()

		rows, _ := f.GetRows(SheetName)
		if len(rows) != 1 {
			t.Errorf("expected header only, got %d rows", len(rows))
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.xlsx")
		os.WriteFile(path, []byte("stale"), 0644)

		if _, err := WriteSpreadsheet(testRecords()[:1], "", path); err != nil {
			t.Fatalf("WriteSpreadsheet failed: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("expected a valid workbook, got %v", err)
		}
		defer f.Close()
		rows, _ := f.GetRows(SheetName)
		if len(rows) != 2 {
			t.Errorf("expected header plus one row, got %d", len(rows))
		}
	})

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.CSV")
		if _, err := WriteSpreadsheet(testRecords(), "", path); err != nil {
			t.Fatalf("WriteSpreadsheet failed: %v", err)
		}

		rows, err := csv.NewReader(strings.NewReader(th.MustReadFile(t, path))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if !reflect.DeepEqual(rows[0], Headers()) {
			t.Errorf("unexpected header %v", rows[0])
		}
		if rows[1][2] != "The official video\nfor the 1987 hit" || rows[1][4] != "FALSE" {
			t.Errorf("unexpected row %q", rows[1])
		}
	})

	t.Run("unwritable directory", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		os.WriteFile(blocker, nil, 0644)

		if _, err := WriteSpreadsheet(testRecords(), "", filepath.Join(blocker, "out.xlsx")); err == nil {
			t.Error("expected error when the parent is a file")
		}
	})
}

func TestIsCSV(t *testing.T) {
	tc := map[string]bool{
		"a.csv":         true,
		"a.CSV":         true,
		"a.xlsx":        false,
		"a":             false,
		"csv":           false,
		"dir.csv/a.xls": false,
	}
	for path, want := range tc {
		if got := IsCSV(path); got != want {
			t.Errorf("IsCSV(%q) = %v, want %v", path, got, want)
		}
	}
}
