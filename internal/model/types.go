package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Preview is the metadata record extracted from a single page. Every field
// except URL is optional; omitempty keeps absent fields out of the JSON so a
// caller never sees an empty-string placeholder.
type Preview struct {
	URL           string   `json:"url"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Image         string   `json:"image,omitempty"`
	SiteName      string   `json:"site_name,omitempty"`
	Type          string   `json:"type,omitempty"`
	Locale        string   `json:"locale,omitempty"`
	Author        string   `json:"author,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PublishedTime string   `json:"published_time,omitempty"`
	ModifiedTime  string   `json:"modified_time,omitempty"`
	VideoURL      string   `json:"video_url,omitempty"`
	AudioURL      string   `json:"audio_url,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	TwitterHandle string   `json:"twitter_handle,omitempty"`
	TwitterCard   string   `json:"twitter_card,omitempty"`
	CanonicalURL  string   `json:"canonical_url,omitempty"`
	Favicon       string   `json:"favicon,omitempty"`
	ThemeColor    string   `json:"theme_color,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// Lookup is one recorded unfurl attempt from the optional history store.
type Lookup struct {
	ID         uuid.UUID       `json:"id"`
	URL        string          `json:"url"`
	Outcome    string          `json:"outcome"`
	Error      string          `json:"error,omitempty"`
	DurationMs int64           `json:"durationMs"`
	Preview    json.RawMessage `json:"preview,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
