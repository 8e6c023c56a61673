// package models defines the data model for the playlist spreadsheet exporter
package models

import (
	"errors"
	"time"
)

// WatchURLPrefix is the public watch page for a video ID.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the data access operations for a persistent model.
type Repository[T Model] interface {
	Create(model T) error        // Create inserts a new model into the database
	Get(id string) (T, error)    // Get retrieves a model by its ID
	List(limit int) ([]T, error) // List returns the most recent models first
}

// Playlist is the metadata of a YouTube playlist.
type Playlist struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	ItemCount    int64
}

// PlaylistEntry is one item of a playlist, pointing at a video.
type PlaylistEntry struct {
	Position int64
	VideoID  string
}

// PlaylistPage is one page of playlist items.
//
// An empty NextPageToken means the playlist has no further pages.
type PlaylistPage struct {
	Entries       []PlaylistEntry
	NextPageToken string
}

// Video holds the public snippet of a single video.
type Video struct {
	ID           string
	ChannelTitle string
	Title        string
	Description  string
}

// VideoRecord is one spreadsheet row.
type VideoRecord struct {
	Channel     string `json:"channel"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Watched     bool   `json:"watched"`
}

// NewVideoRecord builds the row for v. Watched is always false.
func NewVideoRecord(v Video) VideoRecord {
	return VideoRecord{
		Channel:     v.ChannelTitle,
		Title:       v.Title,
		Description: v.Description,
		Link:        WatchURL(v.ID),
		Watched:     false,
	}
}

// WatchURL returns the watch page URL of a video.
func WatchURL(videoID string) string {
	return WatchURLPrefix + videoID
}

// ExportRun records a spreadsheet written for a playlist.
type ExportRun struct {
	id            string
	sequence      int
	PlaylistID    string
	PlaylistTitle string
	Path          string
	Rows          int
	Skipped       int  // entries dropped because their video could not be resolved
	Partial       bool // enumeration stopped early on a page failure
	createdAt     time.Time
}

// NewExportRun creates an unsaved [ExportRun] stamped with the current time.
func NewExportRun(playlistID, title, path string, rows, skipped int, partial bool) *ExportRun {
	return &ExportRun{
		PlaylistID:    playlistID,
		PlaylistTitle: title,
		Path:          path,
		Rows:          rows,
		Skipped:       skipped,
		Partial:       partial,
		createdAt:     time.Now().UTC(),
	}
}

func (e *ExportRun) ID() string           { return e.id }
func (e *ExportRun) CreatedAt() time.Time { return e.createdAt }

// Sequence is the human-readable run number (#1, #2, ...) assigned on insert.
func (e *ExportRun) Sequence() int { return e.sequence }

// SetID is called by the repository when the run is persisted.
func (e *ExportRun) SetID(id string) { e.id = id }

// SetSequence is called by the repository when the run is persisted.
func (e *ExportRun) SetSequence(n int) { e.sequence = n }

// SetCreatedAt is used when scanning stored rows.
func (e *ExportRun) SetCreatedAt(t time.Time) { e.createdAt = t }

// Validate checks required fields.
func (e *ExportRun) Validate() error {
	switch {
	case e.PlaylistID == "":
		return errors.New("playlist id is required")
	case e.Path == "":
		return errors.New("path is required")
	case e.Rows < 0 || e.Skipped < 0:
		return errors.New("row counts must not be negative")
	}
	return nil
}
