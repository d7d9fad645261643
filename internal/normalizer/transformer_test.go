package normalizer

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"ytrend/internal/models"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"PT1H2M30S", 3750},
		{"PT45S", 45},
		{"PT10M", 600},
		{"PT2H", 7200},
		{"PT1H30M", 5400},
		{"PT1H5S", 3605},
		{"PT0S", 0},
		{"PT", 0},
		{"", 0},
		{"garbage", 0},
		{"P1DT2H", 0},
		{"PT9223372036854775807S", math.MaxInt64},
		{"PT9223372036854775807H", 0},
		{"PT1H9223372036854775807S", 0},
		{"PT2562047788015216H", 0},
		{"PT99999999999999999999H", 0},
	}

	for _, tt := range tests {
		if got := ParseDuration(tt.in); got != tt.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{90, "01:30"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := FormatDuration(ParseDuration("PT1M30S")); got != "01:30" {
		t.Errorf("round trip PT1M30S = %q, want 01:30", got)
	}
}

func TestIsShortForm(t *testing.T) {
	if !IsShortForm(60) {
		t.Error("IsShortForm(60) = false, want true")
	}

	if IsShortForm(61) {
		t.Error("IsShortForm(61) = true, want false")
	}
}

func TestRate(t *testing.T) {
	if got := Rate(500, 0); got != 0 {
		t.Errorf("Rate(500, 0) = %v, want 0", got)
	}

	if got := Rate(1, 3); got != 33.333 {
		t.Errorf("Rate(1, 3) = %v, want 33.333", got)
	}

	if got := Rate(50, 1000); got != 5 {
		t.Errorf("Rate(50, 1000) = %v, want 5", got)
	}
}

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		views int64
		want  models.ViewTier
	}{
		{0, models.TierNew},
		{9_999, models.TierNew},
		{10_000, models.TierNormal},
		{99_999, models.TierNormal},
		{100_000, models.TierPopular},
		{999_999, models.TierPopular},
		{1_000_000, models.TierHit},
		{9_999_999, models.TierHit},
		{10_000_000, models.TierMegaHit},
	}

	tr := NewTransformer()
	for _, tt := range tests {
		if got := tr.ClassifyTier(tt.views); got != tt.want {
			t.Errorf("ClassifyTier(%d) = %s, want %s", tt.views, got, tt.want)
		}
	}
}

func TestClassifyTier_CustomTable(t *testing.T) {
	tiers := []Tier{{Label: "big", MinViews: 100}}

	if got := ClassifyTier(tiers, 100); got != "big" {
		t.Errorf("ClassifyTier = %s, want big", got)
	}

	if got := ClassifyTier(tiers, 99); got != models.TierNew {
		t.Errorf("ClassifyTier = %s, want %s", got, models.TierNew)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in    string
		want  time.Time
		valid bool
	}{
		{"2024-03-09T10:00:00Z", time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC), true},
		{"2024-03-09T19:00:00+09:00", time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC), true},
		{"2024-03-09T10:00:00.123Z", time.Date(2024, 3, 9, 10, 0, 0, 123_000_000, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		got := ParseTimestamp(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ParseTimestamp(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
			continue
		}

		if tt.valid && !got.Time.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got.Time, tt.want)
		}
	}
}

func TestTransformer_CleanText(t *testing.T) {
	tr := NewTransformer()

	if got := tr.CleanText("  Tom &amp; Jerry\n\n&#39;s   show "); got != "Tom & Jerry 's show" {
		t.Errorf("CleanText = %q", got)
	}

	if got := tr.CleanText(42); got != "" {
		t.Errorf("CleanText(42) = %q, want empty", got)
	}

	if got := tr.CleanText(nil); got != "" {
		t.Errorf("CleanText(nil) = %q, want empty", got)
	}
}

func TestTransformer_Transform(t *testing.T) {
	tr := NewTransformer()

	tags := make([]any, 12)
	for i := range tags {
		tags[i] = "tag" + string(rune('a'+i))
	}

	raw := models.RawVideo{
		"video_id":      "abc123",
		"title":         "Hello &quot;World&quot;",
		"channel_title": " Channel\tOne ",
		"published_at":  "2024-03-09T10:00:00Z",
		"duration":      "PT1M30S",
		"view_count":    "20000",
		"like_count":    float64(1000),
		"comment_count": 50,
		"tags":          tags,
		"description":   "설명문",
		"thumbnail_url": "https://i.ytimg.com/vi/abc123/default.jpg",
	}

	v := tr.Transform(raw)

	if v.VideoID != "abc123" {
		t.Errorf("VideoID = %s, want abc123", v.VideoID)
	}

	if v.Title != `Hello "World"` {
		t.Errorf("Title = %q", v.Title)
	}

	if v.ChannelTitle != "Channel One" {
		t.Errorf("ChannelTitle = %q", v.ChannelTitle)
	}

	if !v.PublishedAt.Valid {
		t.Error("PublishedAt should be valid")
	}

	if v.ViewCount != 20000 || v.LikeCount != 1000 || v.CommentCount != 50 {
		t.Errorf("counts = %d/%d/%d, want 20000/1000/50", v.ViewCount, v.LikeCount, v.CommentCount)
	}

	if v.DurationSeconds != 90 || v.DurationFormatted != "01:30" || v.IsShortForm {
		t.Errorf("duration = %d %s short=%v", v.DurationSeconds, v.DurationFormatted, v.IsShortForm)
	}

	if v.TagsCount != 12 {
		t.Errorf("TagsCount = %d, want 12", v.TagsCount)
	}

	if n := len(strings.Split(v.Tags, ", ")); n != MaxTags {
		t.Errorf("joined tags = %d, want %d", n, MaxTags)
	}

	if v.DescriptionLength != 3 {
		t.Errorf("DescriptionLength = %d, want 3", v.DescriptionLength)
	}

	if v.VideoURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("VideoURL = %s", v.VideoURL)
	}

	if v.LikeRate != 5 || v.CommentRate != 0.25 {
		t.Errorf("rates = %v/%v, want 5/0.25", v.LikeRate, v.CommentRate)
	}

	if v.EngagementScore != 1050 {
		t.Errorf("EngagementScore = %d, want 1050", v.EngagementScore)
	}

	if v.ViewTier != models.TierNormal {
		t.Errorf("ViewTier = %s, want %s", v.ViewTier, models.TierNormal)
	}
}

func TestTransformer_Transform_Defaults(t *testing.T) {
	tr := NewTransformer()

	inputs := []models.RawVideo{
		nil,
		{},
		{
			"video_id":      7,
			"title":         []string{"x"},
			"published_at":  "not a date",
			"duration":      12,
			"view_count":    "lots",
			"like_count":    -5,
			"comment_count": map[string]any{},
			"tags":          "not a list",
			"description":   nil,
		},
	}

	for i, raw := range inputs {
		v := tr.Transform(raw)

		if v.VideoID != "" || v.Title != "" || v.PublishedAt.Valid {
			t.Errorf("case %d: text defaults not applied: %+v", i, v)
		}

		if v.ViewCount != 0 || v.LikeCount != 0 || v.CommentCount != 0 {
			t.Errorf("case %d: count defaults not applied: %+v", i, v)
		}

		if v.DurationSeconds != 0 || v.DurationFormatted != "00:00" || !v.IsShortForm {
			t.Errorf("case %d: duration defaults not applied: %+v", i, v)
		}

		if v.Tags != "" || v.TagsCount != 0 || v.LikeRate != 0 || v.ViewTier != models.TierNew {
			t.Errorf("case %d: derived defaults not applied: %+v", i, v)
		}

		if v.VideoURL != models.WatchURLPrefix {
			t.Errorf("case %d: VideoURL = %s", i, v.VideoURL)
		}
	}
}

func TestTransformer_Transform_Overflow(t *testing.T) {
	tr := NewTransformer()

	tests := []struct {
		name           string
		raw            models.RawVideo
		wantSeconds    int64
		wantShort      bool
		wantFormatted  string
		wantEngagement int64
	}{
		{
			name:           "Huge hour group",
			raw:            models.RawVideo{"duration": "PT9223372036854775807H"},
			wantSeconds:    0,
			wantShort:      true,
			wantFormatted:  "00:00",
			wantEngagement: 0,
		},
		{
			name:           "Total overflows",
			raw:            models.RawVideo{"duration": "PT1H9223372036854775807S"},
			wantSeconds:    0,
			wantShort:      true,
			wantFormatted:  "00:00",
			wantEngagement: 0,
		},
		{
			name: "Engagement saturates",
			raw: models.RawVideo{
				"duration":      "PT10M",
				"like_count":    float64(9e18),
				"comment_count": float64(9e18),
			},
			wantSeconds:    600,
			wantShort:      false,
			wantFormatted:  "10:00",
			wantEngagement: math.MaxInt64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tr.Transform(tt.raw)

			if v.DurationSeconds != tt.wantSeconds || v.IsShortForm != tt.wantShort || v.DurationFormatted != tt.wantFormatted {
				t.Errorf("duration = %d/%v/%q, want %d/%v/%q",
					v.DurationSeconds, v.IsShortForm, v.DurationFormatted, tt.wantSeconds, tt.wantShort, tt.wantFormatted)
			}

			if v.EngagementScore != tt.wantEngagement {
				t.Errorf("EngagementScore = %d, want %d", v.EngagementScore, tt.wantEngagement)
			}

			if v.EngagementScore < 0 || v.DurationSeconds < 0 {
				t.Errorf("negative value: %+v", v)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{float64(12.9), 12, true},
		{"  42 ", 42, true},
		{"3.5", 3, true},
		{json.Number("77"), 77, true},
		{int64(9), 9, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := parseCount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseCount(%v) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
