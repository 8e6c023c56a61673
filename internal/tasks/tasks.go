package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsheet/internal/models"
	"github.com/desertthunder/ytsheet/internal/services"
	"github.com/desertthunder/ytsheet/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// UnknownPlaylist is the title used when the playlist metadata cannot be fetched.
const UnknownPlaylist = "Unknown playlist"

const (
	defaultWorkers   = 4
	defaultRateLimit = 10.0
)

// ItemResult is the outcome of resolving a single playlist entry.
type ItemResult struct {
	Position int64               // Position of the entry in the playlist
	VideoID  string              // Video the entry points at
	Record   *models.VideoRecord // Row built from the video (nil on failure)
	Err      error               // Lookup error; wraps [shared.ErrVideoNotFound] for missing videos
}

// EnumerateResult contains everything collected while walking a playlist.
type EnumerateResult struct {
	PlaylistID string
	Records    []models.VideoRecord // Rows in playlist order, one per resolved entry
	Items      []ItemResult         // Every entry seen, in playlist order
	Pages      int                  // Pages fetched successfully
	PageErr    error                // Set when enumeration stopped on a failed page
}

// Missing counts entries whose video no longer exists or is not visible.
func (r *EnumerateResult) Missing() int {
	n := 0
	for _, it := range r.Items {
		if errors.Is(it.Err, shared.ErrVideoNotFound) {
			n++
		}
	}
	return n
}

// Failed counts entries whose lookup failed for any other reason.
func (r *EnumerateResult) Failed() int {
	n := 0
	for _, it := range r.Items {
		if it.Err != nil && !errors.Is(it.Err, shared.ErrVideoNotFound) {
			n++
		}
	}
	return n
}

// Skipped is the number of entries that produced no row.
func (r *EnumerateResult) Skipped() int {
	return len(r.Items) - len(r.Records)
}

// Partial reports whether a page failure cut the enumeration short.
func (r *EnumerateResult) Partial() bool {
	return r.PageErr != nil
}

// EngineOpts configures a [PlaylistEngine].
type EngineOpts struct {
	PageSize  int64       // playlistItems.list page size, clamped to [1, 50]
	Workers   int         // Concurrent video lookups per page (default: 4)
	RateLimit float64     // Video lookups per second; 0 disables pacing (default: 10)
	Logger    *log.Logger // Defaults to [shared.NewLogger]
}

// DefaultEngineOpts returns the options used when none are configured.
func DefaultEngineOpts() EngineOpts {
	return EngineOpts{PageSize: shared.MaxPageSize, Workers: defaultWorkers, RateLimit: defaultRateLimit}
}

// EngineOptsFromConfig maps the [youtube] section of the configuration onto [EngineOpts].
func EngineOptsFromConfig(cfg shared.YouTubeConfig, logger *log.Logger) EngineOpts {
	return EngineOpts{
		PageSize:  cfg.PageSize,
		Workers:   cfg.Workers,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	}
}

// PlaylistEngine resolves playlists and their videos through a [services.Service].
type PlaylistEngine struct {
	svc     services.Service
	opts    EngineOpts
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewPlaylistEngine creates a new PlaylistEngine backed by svc.
func NewPlaylistEngine(svc services.Service, opts EngineOpts) *PlaylistEngine {
	opts.PageSize = shared.ClampPageSize(opts.PageSize)
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Workers)
	}

	return &PlaylistEngine{svc: svc, opts: opts, limiter: limiter, logger: opts.Logger}
}

// Options returns the normalized options of the engine.
func (e *PlaylistEngine) Options() EngineOpts {
	return e.opts
}

// sendProgress sends a progress update through the channel without blocking.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ResolvePlaylist fetches the playlist metadata.
//
// It never fails: when the lookup errors or finds nothing, the returned playlist carries [UnknownPlaylist].
func (e *PlaylistEngine) ResolvePlaylist(ctx context.Context, playlistID string) *models.Playlist {
	logger := shared.WithLogger(e.logger, "playlist", playlistID)

	if e.svc == nil {
		logger.Warn("playlist lookup skipped", "error", shared.ErrServiceUnavailable)
		return &models.Playlist{ID: playlistID, Title: UnknownPlaylist}
	}

	pl, err := e.svc.GetPlaylist(ctx, playlistID)
	if err != nil {
		logger.Warn("failed to fetch playlist title", "error", err)
		return &models.Playlist{ID: playlistID, Title: UnknownPlaylist}
	}
	if pl.Title == "" {
		pl.Title = UnknownPlaylist
	}

	logger.Debug("resolved playlist", "title", pl.Title, "items", pl.ItemCount)
	return pl
}

// ResolveTitle returns the playlist title or [UnknownPlaylist].
func (e *PlaylistEngine) ResolveTitle(ctx context.Context, playlistID string) string {
	return e.ResolvePlaylist(ctx, playlistID).Title
}

// Enumerate walks every page of the playlist and resolves each entry to a [models.VideoRecord].
//
// Entries whose lookup fails are kept in [EnumerateResult.Items] with their error and produce no row.
// A failed page ends the walk; the rows gathered up to that point are returned with
// [EnumerateResult.PageErr] set.
func (e *PlaylistEngine) Enumerate(ctx context.Context, prog chan<- ProgressUpdate, playlistID string) *EnumerateResult {
	logger := shared.WithLogger(e.logger, "playlist", playlistID)
	result := &EnumerateResult{PlaylistID: playlistID, Records: []models.VideoRecord{}}

	if e.svc == nil {
		result.PageErr = fmt.Errorf("%w: no platform client", shared.ErrServiceUnavailable)
		return result
	}

	pageToken := ""
	for {
		e.sendProgress(prog, fetchPageUpdate(result.Pages+1, len(result.Items)))

		page, err := e.svc.ListPlaylistItems(ctx, playlistID, pageToken, e.opts.PageSize)
		if err != nil {
			logger.Error("failed to fetch playlist page, keeping partial results",
				"page", result.Pages+1, "records", len(result.Records), "error", err)
			result.PageErr = err
			break
		}
		result.Pages++
		logger.Debug("fetched page", "page", result.Pages, "entries", len(page.Entries), "next", page.NextPageToken)

		items := e.lookupPage(ctx, prog, logger, page.Entries, len(result.Items))
		for _, it := range items {
			result.Items = append(result.Items, it)
			if it.Record != nil {
				result.Records = append(result.Records, *it.Record)
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	logger.Info("enumeration finished",
		"pages", result.Pages,
		"records", len(result.Records),
		"missing", result.Missing(),
		"failed", result.Failed(),
		"partial", result.Partial(),
	)
	e.sendProgress(prog, enumerationDoneUpdate(result))
	return result
}

// lookupPage resolves the entries of one page on a bounded worker group.
//
// Each worker writes only its own slot, so the slice keeps page order.
func (e *PlaylistEngine) lookupPage(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	logger *log.Logger,
	entries []models.PlaylistEntry,
	offset int,
) []ItemResult {
	items := make([]ItemResult, len(entries))
	total := offset + len(entries)

	var (
		mu        sync.Mutex
		completed = offset
	)

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)

	for i, entry := range entries {
		g.Go(func() error {
			items[i] = e.lookupVideo(ctx, logger, entry)

			mu.Lock()
			completed++
			step := completed
			mu.Unlock()

			e.sendProgress(prog, lookupVideoUpdate(step, total, items[i]))
			return nil
		})
	}
	g.Wait()

	return items
}

// lookupVideo resolves a single entry. Errors are recorded on the result, never returned.
func (e *PlaylistEngine) lookupVideo(ctx context.Context, logger *log.Logger, entry models.PlaylistEntry) ItemResult {
	item := ItemResult{Position: entry.Position, VideoID: entry.VideoID}

	if err := e.limiter.Wait(ctx); err != nil {
		item.Err = err
		return item
	}

	video, err := e.svc.GetVideo(ctx, entry.VideoID)
	switch {
	case errors.Is(err, shared.ErrVideoNotFound):
		logger.Debug("skipping unavailable video", "video", entry.VideoID, "position", entry.Position)
		item.Err = err
		return item
	case err != nil:
		logger.Warn("skipping video after lookup error", "video", entry.VideoID, "error", err)
		item.Err = err
		return item
	}

	record := models.NewVideoRecord(*video)
	item.Record = &record
	return item
}
