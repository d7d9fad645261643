// Package models defines data structures for the normalizer, table operations and report.
package models

import (
	"encoding/json"
	"time"
)

// RawVideo is a single video record as returned by the search or trending source.
// Any key may be missing, null or hold a value of the wrong type.
type RawVideo map[string]any

// Raw record keys.
const (
	RawVideoID      = "video_id"
	RawTitle        = "title"
	RawChannelTitle = "channel_title"
	RawPublishedAt  = "published_at"
	RawDuration     = "duration"
	RawViewCount    = "view_count"
	RawLikeCount    = "like_count"
	RawCommentCount = "comment_count"
	RawTags         = "tags"
	RawDescription  = "description"
	RawThumbnailURL = "thumbnail_url"
)

// ViewTier is the popularity bucket derived from the view count.
type ViewTier string

// View tiers, highest first.
const (
	TierMegaHit ViewTier = "메가히트"
	TierHit     ViewTier = "히트"
	TierPopular ViewTier = "인기"
	TierNormal  ViewTier = "보통"
	TierNew     ViewTier = "신규"
)

// WatchURLPrefix is prepended to the video ID to build the watch page URL.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// Video is a normalized video record. Every field always holds a usable value.
type Video struct {
	PublishedAt       Timestamp `json:"published_at"`
	VideoID           string    `json:"video_id"`
	Title             string    `json:"title"`
	ChannelTitle      string    `json:"channel_title"`
	DurationFormatted string    `json:"duration_formatted"`
	Tags              string    `json:"tags"`
	ThumbnailURL      string    `json:"thumbnail_url"`
	VideoURL          string    `json:"video_url"`
	ViewTier          ViewTier  `json:"view_tier"`
	ViewCount         int64     `json:"view_count"`
	LikeCount         int64     `json:"like_count"`
	CommentCount      int64     `json:"comment_count"`
	DurationSeconds   int64     `json:"duration_seconds"`
	TagsCount         int64     `json:"tags_count"`
	DescriptionLength int64     `json:"description_length"`
	EngagementScore   int64     `json:"engagement_score"`
	LikeRate          float64   `json:"like_rate"`
	CommentRate       float64   `json:"comment_rate"`
	IsShortForm       bool      `json:"is_short_form"`
}

// EngagementRate returns (likes+comments)/max(views,1) as a fraction.
func (v Video) EngagementRate() float64 {
	views := v.ViewCount
	if views < 1 {
		views = 1
	}

	return float64(v.LikeCount+v.CommentCount) / float64(views)
}

// Timestamp is a publish time that may be absent.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// NewTimestamp wraps a valid time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// Before reports whether ts sorts before other. Absent timestamps sort lowest.
func (ts Timestamp) Before(other Timestamp) bool {
	switch {
	case !ts.Valid && !other.Valid:
		return false
	case !ts.Valid:
		return true
	case !other.Valid:
		return false
	default:
		return ts.Time.Before(other.Time)
	}
}

// String renders the timestamp as RFC 3339, or an empty string when absent.
func (ts Timestamp) String() string {
	if !ts.Valid {
		return ""
	}

	return ts.Time.Format(time.RFC3339)
}

// MarshalJSON encodes an absent timestamp as null.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(ts.Time.Format(time.RFC3339))
}

// UnmarshalJSON accepts null, an empty string or an RFC 3339 string.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == nil {
		*ts = Timestamp{}
		return nil
	}

	parsed, err := ParseTimestamp(*s)
	if err != nil {
		return err
	}

	*ts = parsed

	return nil
}

// ParseTimestamp is the inverse of Timestamp.String. An empty string is an absent timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Timestamp{}, err
	}

	return NewTimestamp(t), nil
}
