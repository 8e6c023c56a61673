// Package tasks turns a playlist ID into spreadsheet rows.
//
// # Core Operations
//
// [PlaylistEngine] exposes the two read steps of an export:
//
//  1. [PlaylistEngine.ResolveTitle] : playlist title lookup
//     - Calls playlists.list once
//     - Never fails; any error or empty result yields [UnknownPlaylist]
//
//  2. [PlaylistEngine.Enumerate] : eager enumeration
//     - Follows nextPageToken until the playlist is exhausted
//     - Looks up every entry with videos.list and builds a [models.VideoRecord]
//     - Skips entries whose video is missing, private or fails to resolve
//     - Stops at the first failed page and returns what was collected so far
//
// # Fan-out
//
// Lookups within a page run on a bounded [errgroup.Group] and are paced by a [rate.Limiter].
// Results are stored by index, so rows keep playlist order for any worker count.
// One worker reproduces a strictly sequential run.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Updates use select with default
// to prevent blocking.
package tasks
