package valueobject

import "time"

// VideoInfo describes the source video a batch item resolved to.
type VideoInfo struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Thumbnail *string `json:"thumbnail,omitempty"`
}

// Nugget is a time-bounded excerpt descriptor produced by the video pipeline.
type Nugget struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StartTime  float64   `json:"start_time"`
	EndTime    float64   `json:"end_time"`
	Transcript *string   `json:"transcript,omitempty"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}

// HighlightMoment marks a high-interest span inside a video.
type HighlightMoment struct {
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// ContentAnalysis holds the AI analysis of a video's transcript.
type ContentAnalysis struct {
	Summary           string            `json:"summary"`
	KeyTopics         []string          `json:"key_topics"`
	SentimentScore    float64           `json:"sentiment_score"`
	EngagementScore   float64           `json:"engagement_score"`
	SuggestedTags     []string          `json:"suggested_tags"`
	HighlightMoments  []HighlightMoment `json:"highlight_moments"`
	ContentCategories []string          `json:"content_categories"`
	DifficultyLevel   string            `json:"difficulty_level"`
}

// PipelineOutput is everything the per-item pipeline produces for one URL.
type PipelineOutput struct {
	VideoInfo   VideoInfo        `json:"video_info"`
	Nuggets     []Nugget         `json:"nuggets"`
	Analysis    *ContentAnalysis `json:"analysis,omitempty"`
	OutputFiles []string         `json:"output_files"`
}
