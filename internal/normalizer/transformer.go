package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"ytrend/internal/models"
	"ytrend/pkg/utils"
)

const (
	// ShortFormMaxSeconds is the longest duration still counted as short form.
	ShortFormMaxSeconds = 60
	// MaxTags is the number of tags kept in the joined tags column.
	MaxTags = 10
	// fallbackTimestampLayout is tried when RFC 3339 parsing fails.
	fallbackTimestampLayout = "2006-01-02T15:04:05Z"
)

// durationPattern matches the ISO 8601 durations the video API returns, e.g. PT1H2M30S.
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// Tier pairs a lower view-count bound with its label.
type Tier struct {
	Label    models.ViewTier
	MinViews int64
}

// DefaultTiers is evaluated top-down; the first bound the view count reaches wins.
var DefaultTiers = []Tier{
	{Label: models.TierMegaHit, MinViews: 10_000_000},
	{Label: models.TierHit, MinViews: 1_000_000},
	{Label: models.TierPopular, MinViews: 100_000},
	{Label: models.TierNormal, MinViews: 10_000},
}

// Transformer converts raw video records into normalized videos.
type Transformer struct {
	text  *utils.StringHelper
	tiers []Tier
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		text:  utils.NewStringHelper(),
		tiers: DefaultTiers,
	}
}

// Transform builds a fully populated video from a raw record.
// Missing or malformed fields fall back to their zero value.
func (t *Transformer) Transform(raw models.RawVideo) models.Video {
	id := stringField(raw, models.RawVideoID)
	likes := countField(raw, models.RawLikeCount)
	comments := countField(raw, models.RawCommentCount)
	views := countField(raw, models.RawViewCount)
	seconds := ParseDuration(stringField(raw, models.RawDuration))
	tags := tagList(raw[models.RawTags])

	return models.Video{
		VideoID:           id,
		Title:             t.CleanText(raw[models.RawTitle]),
		ChannelTitle:      t.CleanText(raw[models.RawChannelTitle]),
		PublishedAt:       ParseTimestamp(stringField(raw, models.RawPublishedAt)),
		ViewCount:         views,
		LikeCount:         likes,
		CommentCount:      comments,
		DurationSeconds:   seconds,
		DurationFormatted: FormatDuration(seconds),
		IsShortForm:       IsShortForm(seconds),
		Tags:              JoinTags(tags),
		TagsCount:         int64(tagCount(raw[models.RawTags])),
		DescriptionLength: int64(utf8.RuneCountInString(stringField(raw, models.RawDescription))),
		ThumbnailURL:      stringField(raw, models.RawThumbnailURL),
		VideoURL:          models.WatchURLPrefix + id,
		LikeRate:          Rate(likes, views),
		CommentRate:       Rate(comments, views),
		EngagementScore:   saturatingAdd(likes, comments),
		ViewTier:          t.ClassifyTier(views),
	}
}

// CleanText decodes HTML entities and collapses whitespace. Non-strings yield "".
func (t *Transformer) CleanText(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}

	return t.text.NormalizeWhitespace(t.text.DecodeEntities(s))
}

// ClassifyTier returns the first tier whose lower bound views reaches.
func (t *Transformer) ClassifyTier(views int64) models.ViewTier {
	return ClassifyTier(t.tiers, views)
}

// ClassifyTier evaluates tiers in order and falls back to TierNew.
func ClassifyTier(tiers []Tier, views int64) models.ViewTier {
	for _, tier := range tiers {
		if views >= tier.MinViews {
			return tier.Label
		}
	}

	return models.TierNew
}

// ParseTimestamp parses an ISO 8601 publish time. Unparseable input yields an absent timestamp.
func ParseTimestamp(s string) models.Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Timestamp{}
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return models.NewTimestamp(ts)
	}

	if ts, err := time.Parse(fallbackTimestampLayout, s); err == nil {
		return models.NewTimestamp(ts)
	}

	return models.Timestamp{}
}

// ParseDuration converts PT#H#M#S into seconds. Any subset of the groups may be present;
// input that does not start with PT yields 0.
func ParseDuration(s string) int64 {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	total := int64(0)

	for _, g := range []struct {
		digits string
		unit   int64
	}{{m[1], 3600}, {m[2], 60}, {m[3], 1}} {
		n := durationGroup(g.digits)
		if n > (math.MaxInt64-total)/g.unit {
			return 0
		}

		total += n * g.unit
	}

	return total
}

func durationGroup(s string) int64 {
	if s == "" {
		return 0
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// saturatingAdd adds two non-negative counts, capping at math.MaxInt64.
func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}

	return a + b
}

// FormatDuration renders seconds as HH:MM:SS when at least an hour long, MM:SS otherwise.
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "00:00"
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

// IsShortForm reports whether a video of the given length counts as short form.
func IsShortForm(seconds int64) bool {
	return seconds <= ShortFormMaxSeconds
}

// Rate returns 100*part/views rounded to three decimals, or 0 when views is 0.
func Rate(part, views int64) float64 {
	if views <= 0 {
		return 0
	}

	return Round(float64(part)/float64(views)*100, 3)
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// JoinTags joins at most MaxTags tags with ", ".
func JoinTags(tags []string) string {
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}

	return strings.Join(tags, ", ")
}

func stringField(raw models.RawVideo, key string) string {
	s, _ := raw[key].(string)
	return s
}

// countField reads a non-negative count from a JSON number or a numeric string.
func countField(raw models.RawVideo, key string) int64 {
	n, ok := parseCount(raw[key])
	if !ok {
		return 0
	}

	return n
}

func parseCount(v any) (int64, bool) {
	var f float64

	switch x := v.(type) {
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			f = float64(n)
			break
		}

		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}

		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if n < 0 {
				return 0, false
			}

			return n, true
		}

		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}

		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

// tagList returns the string entries of a raw tag list, skipping anything else.
func tagList(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		tags := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}

		return tags
	}

	return nil
}

func tagCount(v any) int {
	switch x := v.(type) {
	case []string:
		return len(x)
	case []any:
		return len(x)
	}

	return 0
}
