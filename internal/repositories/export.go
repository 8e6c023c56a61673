package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/desertthunder/ytsheet/internal/shared"
)

const exportColumns = `id, sequence, playlist_id, playlist_title, path, row_count, skipped_count, partial, created_at`

// ExportRepository implements models.Repository[*models.ExportRun] for the export history.
type ExportRepository struct {
	db *sql.DB
}

// NewExportRepository creates a new ExportRepository with the given database connection
func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create inserts a new export run with generated ID and sequence
func (r *ExportRepository) Create(run *models.ExportRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "exports")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `INSERT INTO exports (` + exportColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.Exec(query,
		id,
		sequence,
		run.PlaylistID,
		run.PlaylistTitle,
		run.Path,
		run.Rows,
		run.Skipped,
		run.Partial,
		run.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}

	run.SetID(id)
	run.SetSequence(sequence)
	return nil
}

// Get retrieves an export run by ID
func (r *ExportRepository) Get(id string) (*models.ExportRun, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = ?`

	run, err := scanExport(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrExportNotFound, id)
	}
	return run, err
}

// List returns the most recent export runs first. A limit of zero or less returns every run.
func (r *ExportRepository) List(limit int) ([]*models.ExportRun, error) {
	return r.list(`SELECT `+exportColumns+` FROM exports ORDER BY sequence DESC`, limit)
}

// ListByPlaylist returns the export runs of a single playlist, most recent first.
func (r *ExportRepository) ListByPlaylist(playlistID string, limit int) ([]*models.ExportRun, error) {
	return r.list(`SELECT `+exportColumns+` FROM exports WHERE playlist_id = ? ORDER BY sequence DESC`, limit, playlistID)
}

func (r *ExportRepository) list(query string, limit int, args ...any) ([]*models.ExportRun, error) {
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	runs := []*models.ExportRun{}
	for rows.Next() {
		run, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// scanExport scans a single row into a [models.ExportRun]
func scanExport(s scanner) (*models.ExportRun, error) {
	var (
		id            string
		sequence      int
		playlistID    string
		playlistTitle string
		path          string
		rowCount      int
		skipped       int
		partial       bool
		createdAt     time.Time
	)

	err := s.Scan(&id, &sequence, &playlistID, &playlistTitle, &path, &rowCount, &skipped, &partial, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan export: %w", err)
	}

	run := models.NewExportRun(playlistID, playlistTitle, path, rowCount, skipped, partial)
	run.SetID(id)
	run.SetSequence(sequence)
	run.SetCreatedAt(createdAt)
	return run, nil
}

var _ models.Repository[*models.ExportRun] = (*ExportRepository)(nil)
