package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps known so far; grows as pages arrive
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchPage Phase = iota
	LookupVideos
	EnumerationDone
)

func (p Phase) String() string {
	switch p {
	case FetchPage:
		return "fetch_page"
	case LookupVideos:
		return "lookup_videos"
	case EnumerationDone:
		return "enumeration_done"
	default:
		return ""
	}
}

func fetchPageUpdate(page, known int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    page,
		Total:   known,
		Message: fmt.Sprintf("Fetching playlist page %d...", page),
	}
}

func lookupVideoUpdate(step, total int, item ItemResult) ProgressUpdate {
	if item.Err != nil {
		return ProgressUpdate{
			Phase:   LookupVideos,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, item.VideoID, item.Err),
		}
	}
	return ProgressUpdate{
		Phase:   LookupVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, item.Record.Channel, item.Record.Title),
	}
}

func enumerationDoneUpdate(res *EnumerateResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnumerationDone,
		Step:    len(res.Items),
		Total:   len(res.Items),
		Message: fmt.Sprintf("Resolved %d of %d videos", len(res.Records), len(res.Items)),
		Data:    res,
	}
}
