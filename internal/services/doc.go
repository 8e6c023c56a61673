// Package services defines the [Service] interface for the video platform and implements it for the YouTube Data API v3.
//
// # YouTube Implementation
//
// [YouTubeService] wraps the generated google.golang.org/api/youtube/v3 client.
// It does not authenticate by itself: callers pass an *http.Client that already carries credentials,
// normally the one returned by auth.Manager.Client, which refreshes expired tokens transparently.
//
// Three endpoints are used, all with the read-only scope:
//   - playlists.list (part=snippet,contentDetails) : [YouTubeService.GetPlaylist]
//   - playlistItems.list (part=snippet,contentDetails) : [YouTubeService.ListPlaylistItems]
//   - videos.list (part=snippet) : [YouTubeService.GetVideo]
//
// # Error Handling
//
// Empty result sets are reported with typed errors from the shared package:
//   - [shared.ErrPlaylistNotFound] : playlists.list returned no items
//   - [shared.ErrVideoNotFound] : videos.list returned no items (deleted or private video)
//
// Transport and API failures (quota, 4xx, 5xx) are wrapped with [shared.ErrAPIRequest];
// the underlying *googleapi.Error stays reachable through errors.As.
package services
