// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/desertthunder/ytsheet/internal/shared"
	"golang.org/x/oauth2"
)

// MockService is a scripted test double for [services.Service].
//
// Pages are served in the order they were added; the page token of page i is "page-i".
type MockService struct {
	mu sync.Mutex

	playlists   map[string]*models.Playlist
	playlistErr error
	pages       [][]string
	pageErrs    map[int]error
	videos      map[string]*models.Video
	videoErrs   map[string]error

	PlaylistCalls int
	PageCalls     int
	VideoCalls    int
	PageSizes     []int64
}

// NewMockService creates an empty [MockService].
func NewMockService() *MockService {
	return &MockService{
		playlists: make(map[string]*models.Playlist),
		pageErrs:  make(map[int]error),
		videos:    make(map[string]*models.Video),
		videoErrs: make(map[string]error),
	}
}

// AddPlaylist registers playlist metadata returned by GetPlaylist.
func (m *MockService) AddPlaylist(id, title string) *MockService {
	m.playlists[id] = &models.Playlist{ID: id, Title: title}
	return m
}

// FailPlaylist makes every GetPlaylist call return err.
func (m *MockService) FailPlaylist(err error) *MockService {
	m.playlistErr = err
	return m
}

// AddPage appends a page listing videoIDs.
func (m *MockService) AddPage(videoIDs ...string) *MockService {
	m.pages = append(m.pages, videoIDs)
	return m
}

// FailPage makes the request for page index return err.
func (m *MockService) FailPage(index int, err error) *MockService {
	m.pageErrs[index] = err
	return m
}

// AddVideo registers a resolvable video. The title defaults to "Video <id>" and the channel to "Channel".
func (m *MockService) AddVideo(id string) *MockService {
	m.videos[id] = &models.Video{
		ID:           id,
		ChannelTitle: "Channel",
		Title:        "Video " + id,
		Description:  "Description of " + id,
	}
	return m
}

// AddVideos registers each id with [MockService.AddVideo].
func (m *MockService) AddVideos(ids ...string) *MockService {
	for _, id := range ids {
		m.AddVideo(id)
	}
	return m
}

// FailVideo makes GetVideo for id return err.
func (m *MockService) FailVideo(id string, err error) *MockService {
	m.videoErrs[id] = err
	return m
}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlaylistCalls++

	if m.playlistErr != nil {
		return nil, m.playlistErr
	}
	if p, ok := m.playlists[playlistID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
}

func (m *MockService) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*models.PlaylistPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PageCalls++
	m.PageSizes = append(m.PageSizes, pageSize)

	index := 0
	if pageToken != "" {
		if _, err := fmt.Sscanf(pageToken, "page-%d", &index); err != nil {
			return nil, fmt.Errorf("%w: bad page token %q", shared.ErrAPIRequest, pageToken)
		}
	}

	if err, ok := m.pageErrs[index]; ok {
		return nil, err
	}

	page := &models.PlaylistPage{}
	if index >= len(m.pages) {
		return page, nil
	}

	offset := 0
	for _, p := range m.pages[:index] {
		offset += len(p)
	}
	for i, id := range m.pages[index] {
		page.Entries = append(page.Entries, models.PlaylistEntry{Position: int64(offset + i), VideoID: id})
	}
	if index+1 < len(m.pages) {
		page.NextPageToken = fmt.Sprintf("page-%d", index+1)
	}
	return page, nil
}

func (m *MockService) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VideoCalls++

	if err, ok := m.videoErrs[videoID]; ok {
		return nil, err
	}
	if v, ok := m.videos[videoID]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
}

// MemoryStore is an in-memory credential store that counts saves.
type MemoryStore struct {
	mu      sync.Mutex
	token   *oauth2.Token
	LoadErr error
	SaveErr error
	Saves   int
}

// NewMemoryStore creates a store holding token, which may be nil.
func NewMemoryStore(token *oauth2.Token) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.token == nil {
		return nil, shared.ErrNoCredential
	}
	t := *s.token
	return &t, nil
}

func (s *MemoryStore) Save(token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	t := *token
	s.token = &t
	return nil
}

// Token returns the stored token.
func (s *MemoryStore) Token() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// StubPrompter returns a fixed authorization code and records the consent URLs it was shown.
type StubPrompter struct {
	Code string
	Err  error
	URLs []string
}

func (p *StubPrompter) Authorize(ctx context.Context, authURL string) (string, error) {
	p.URLs = append(p.URLs, authURL)
	return p.Code, p.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

// InTempDir changes into a fresh temporary directory for the rest of the test.
func InTempDir(t *testing.T) string {
	t.Helper()
	wd := MustGetwd(t)
	dir := t.TempDir()
	MustChdir(t, dir)
	t.Cleanup(func() { MustChdir(t, wd) })
	return dir
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertNoFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected no files in %s, found %v", dir, names)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
