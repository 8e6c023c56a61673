package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/ytsheet/internal/shared"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// newTestService points a YouTubeService at handler.
func newTestService(t *testing.T, handler http.HandlerFunc) *YouTubeService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewYouTubeService(context.Background(), server.Client(), option.WithEndpoint(server.URL+"/"))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func apiError(code int, message string) map[string]any {
	return map[string]any{"error": map[string]any{"code": code, "message": message}}
}

func TestYouTubeService(t *testing.T) {
	t.Run("NewYouTubeService", func(t *testing.T) {
		t.Run("requires http client", func(t *testing.T) {
			if _, err := NewYouTubeService(context.Background(), nil); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})

		t.Run("name", func(t *testing.T) {
			svc, err := NewYouTubeService(context.Background(), http.DefaultClient)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if svc.Name() != "YouTube" {
				t.Errorf("expected name YouTube, got %s", svc.Name())
			}
		})
	})

	t.Run("GetPlaylist", func(t *testing.T) {
		t.Run("returns snippet title", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/youtube/v3/playlists" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("id"); got != "PL123" {
					t.Errorf("expected id PL123, got %s", got)
				}
				writeJSON(t, w, http.StatusOK, map[string]any{
					"items": []map[string]any{{
						"id":             "PL123",
						"snippet":        map[string]any{"title": "Watch Later", "channelTitle": "Me"},
						"contentDetails": map[string]any{"itemCount": 3},
					}},
				})
			})

			playlist, err := svc.GetPlaylist(context.Background(), "PL123")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlist.Title != "Watch Later" {
				t.Errorf("expected title Watch Later, got %s", playlist.Title)
			}
			if playlist.ItemCount != 3 {
				t.Errorf("expected item count 3, got %d", playlist.ItemCount)
			}
		})

		t.Run("empty items", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, map[string]any{"items": []any{}})
			})

			if _, err := svc.GetPlaylist(context.Background(), "nope"); !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Errorf("expected ErrPlaylistNotFound, got %v", err)
			}
		})

		t.Run("api error", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusForbidden, apiError(403, "quotaExceeded"))
			})

			_, err := svc.GetPlaylist(context.Background(), "PL123")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Fatalf("expected ErrAPIRequest, got %v", err)
			}

			var gerr *googleapi.Error
			if !errors.As(err, &gerr) || gerr.Code != http.StatusForbidden {
				t.Errorf("expected wrapped googleapi.Error with code 403, got %v", err)
			}
		})
	})

	t.Run("ListPlaylistItems", func(t *testing.T) {
		t.Run("first page", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if r.URL.Path != "/youtube/v3/playlistItems" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if q.Get("playlistId") != "PL123" {
					t.Errorf("expected playlistId PL123, got %s", q.Get("playlistId"))
				}
				if q.Get("maxResults") != "50" {
					t.Errorf("expected maxResults 50, got %s", q.Get("maxResults"))
				}
				if q.Has("pageToken") {
					t.Errorf("first page must not send pageToken, got %q", q.Get("pageToken"))
				}

				writeJSON(t, w, http.StatusOK, map[string]any{
					"nextPageToken": "CAUQAA",
					"items": []map[string]any{
						{"snippet": map[string]any{"position": 0}, "contentDetails": map[string]any{"videoId": "vid1"}},
						{"snippet": map[string]any{"position": 1}},
						{"snippet": map[string]any{"position": 2}, "contentDetails": map[string]any{"videoId": "vid3"}},
					},
				})
			})

			page, err := svc.ListPlaylistItems(context.Background(), "PL123", "", 500)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if page.NextPageToken != "CAUQAA" {
				t.Errorf("expected next page token CAUQAA, got %s", page.NextPageToken)
			}
			if len(page.Entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(page.Entries))
			}
			if page.Entries[0].VideoID != "vid1" || page.Entries[1].VideoID != "vid3" {
				t.Errorf("unexpected entries %+v", page.Entries)
			}
			if page.Entries[1].Position != 2 {
				t.Errorf("expected position 2, got %d", page.Entries[1].Position)
			}
		})

		t.Run("follows page token", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("pageToken"); got != "CAUQAA" {
					t.Errorf("expected pageToken CAUQAA, got %s", got)
				}
				if got := r.URL.Query().Get("maxResults"); got != "10" {
					t.Errorf("expected maxResults 10, got %s", got)
				}
				writeJSON(t, w, http.StatusOK, map[string]any{"items": []any{}})
			})

			page, err := svc.ListPlaylistItems(context.Background(), "PL123", "CAUQAA", 10)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if page.NextPageToken != "" || len(page.Entries) != 0 {
				t.Errorf("expected empty final page, got %+v", page)
			}
		})

		t.Run("api error", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusNotFound, apiError(404, "playlistNotFound"))
			})

			if _, err := svc.ListPlaylistItems(context.Background(), "PL123", "", 50); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("GetVideo", func(t *testing.T) {
		t.Run("maps snippet", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/youtube/v3/videos" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				writeJSON(t, w, http.StatusOK, map[string]any{
					"items": []map[string]any{{
						"id": "vid1",
						"snippet": map[string]any{
							"channelTitle": "Some Channel",
							"title":        "Some Video",
							"description":  "line one\nline two",
						},
					}},
				})
			})

			video, err := svc.GetVideo(context.Background(), "vid1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if video.ID != "vid1" || video.ChannelTitle != "Some Channel" || video.Title != "Some Video" {
				t.Errorf("unexpected video %+v", video)
			}
			if video.Description != "line one\nline two" {
				t.Errorf("unexpected description %q", video.Description)
			}
		})

		t.Run("deleted video", func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusOK, map[string]any{"items": []any{}})
			})

			if _, err := svc.GetVideo(context.Background(), "gone"); !errors.Is(err, shared.ErrVideoNotFound) {
				t.Errorf("expected ErrVideoNotFound, got %v", err)
			}
		})
	})
}
