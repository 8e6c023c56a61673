// package services defines interface Service for reading playlists from the YouTube Data API
package services

import (
	"context"

	"github.com/desertthunder/ytsheet/internal/models"
)

// Service is the read-only slice of the video platform API the exporter needs.
type Service interface {
	// GetPlaylist retrieves playlist metadata by ID.
	// Returns [shared.ErrPlaylistNotFound] when the API answers with no items.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// ListPlaylistItems fetches one page of playlist entries.
	// An empty pageToken requests the first page.
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*models.PlaylistPage, error)

	// GetVideo retrieves the public snippet of a video.
	// Returns [shared.ErrVideoNotFound] for deleted or private videos.
	GetVideo(ctx context.Context, videoID string) (*models.Video, error)

	// Name returns the name of the service
	Name() string
}
