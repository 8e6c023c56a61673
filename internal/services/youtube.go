// YouTube Data API v3 implementation of [Service]
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/desertthunder/ytsheet/internal/shared"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	playlistParts     = []string{"snippet", "contentDetails"}
	playlistItemParts = []string{"snippet", "contentDetails"}
	videoParts        = []string{"snippet"}
)

// YouTubeService implements the Service interface on top of [youtube.Service].
type YouTubeService struct {
	svc *youtube.Service
}

// NewYouTubeService creates a service that sends requests through client.
//
// Extra options are appended after [option.WithHTTPClient]; tests use them to point the client at a local server.
func NewYouTubeService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*YouTubeService, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: http client is required", shared.ErrServiceUnavailable)
	}

	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &YouTubeService{svc: svc}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// GetPlaylist calls playlists.list for a single ID.
func (y *YouTubeService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	resp, err := y.svc.Playlists.List(playlistParts).Id(playlistID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: playlists.list: %w", shared.ErrAPIRequest, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	item := resp.Items[0]
	playlist := &models.Playlist{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		ChannelTitle: item.Snippet.ChannelTitle,
	}
	if item.ContentDetails != nil {
		playlist.ItemCount = item.ContentDetails.ItemCount
	}

	return playlist, nil
}

// ListPlaylistItems calls playlistItems.list and maps each item to its video ID.
//
// Items without content details are dropped; they carry no video to resolve.
func (y *YouTubeService) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*models.PlaylistPage, error) {
	call := y.svc.PlaylistItems.List(playlistItemParts).
		PlaylistId(playlistID).
		MaxResults(shared.ClampPageSize(pageSize)).
		Context(ctx)

	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%w: playlistItems.list: %w", shared.ErrAPIRequest, err)
	}

	page := &models.PlaylistPage{
		Entries:       make([]models.PlaylistEntry, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}

	for _, item := range resp.Items {
		if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
			continue
		}

		entry := models.PlaylistEntry{VideoID: item.ContentDetails.VideoId}
		if item.Snippet != nil {
			entry.Position = item.Snippet.Position
		}
		page.Entries = append(page.Entries, entry)
	}

	return page, nil
}

// GetVideo calls videos.list for a single ID.
func (y *YouTubeService) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	resp, err := y.svc.Videos.List(videoParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: videos.list: %w", shared.ErrAPIRequest, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
	}

	snippet := resp.Items[0].Snippet
	return &models.Video{
		ID:           videoID,
		ChannelTitle: snippet.ChannelTitle,
		Title:        snippet.Title,
		Description:  snippet.Description,
	}, nil
}
