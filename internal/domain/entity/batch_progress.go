package entity

import "time"

const (
	percentComplete  = 100.0
	minutesPerSecond = 60.0
)

// BatchProgress is the derived view of a batch job's advancement. It is
// recomputed on every incoming result; nothing here is authoritative beyond
// the result sequence it is derived from.
type BatchProgress struct {
	TotalVideos     int        `json:"total_videos"`
	ProcessedVideos int        `json:"processed_videos"`
	FailedVideos    int        `json:"failed_videos"`
	CurrentVideo    *string    `json:"current_video,omitempty"`
	Percentage      float64    `json:"percentage"`
	ETAMinutes      *float64   `json:"eta_minutes,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
}

// newBatchProgress returns zeroed progress for a batch of totalVideos items.
func newBatchProgress(totalVideos int) BatchProgress {
	return BatchProgress{TotalVideos: totalVideos}
}

// recalculate derives percentage and ETA after processed/failed counters
// changed. The ETA is a linear extrapolation of the average per-item duration
// so far; it stays absent until the first result lands.
func (p *BatchProgress) recalculate(now time.Time) {
	if p.TotalVideos == 0 {
		p.Percentage = 0
		return
	}
	p.Percentage = float64(p.ProcessedVideos) / float64(p.TotalVideos) * percentComplete

	if p.ProcessedVideos == 0 || p.StartTime == nil {
		return
	}
	elapsedMinutes := now.Sub(*p.StartTime).Seconds() / minutesPerSecond
	avgPerVideo := elapsedMinutes / float64(p.ProcessedVideos)
	remaining := float64(p.TotalVideos - p.ProcessedVideos)
	eta := avgPerVideo * remaining
	p.ETAMinutes = &eta
}

// clone returns a deep copy of the progress.
func (p BatchProgress) clone() BatchProgress {
	cloned := p
	if p.CurrentVideo != nil {
		current := *p.CurrentVideo
		cloned.CurrentVideo = &current
	}
	if p.ETAMinutes != nil {
		eta := *p.ETAMinutes
		cloned.ETAMinutes = &eta
	}
	if p.StartTime != nil {
		start := *p.StartTime
		cloned.StartTime = &start
	}
	return cloned
}
