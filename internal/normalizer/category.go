package normalizer

import (
	"strings"

	"ytrend/internal/models"
)

// Content categories.
const (
	CategoryShort  = "숏폼"
	CategoryMusic  = "음악"
	CategoryGame   = "게임"
	CategoryFood   = "음식"
	CategoryVlog   = "브이로그"
	CategoryMedium = "미디엄폼"
	CategoryLong   = "롱폼"
)

type categoryKeywords struct {
	category string
	keywords []string
}

// tagCategories are checked in order against the lowercased, space-joined tags.
var tagCategories = []categoryKeywords{
	{CategoryMusic, []string{"music", "음악", "song", "cover", "노래"}},
	{CategoryGame, []string{"game", "게임", "gaming", "play"}},
	{CategoryFood, []string{"food", "음식", "먹방", "eating", "mukbang"}},
	{CategoryVlog, []string{"vlog", "브이로그", "daily", "일상"}},
}

// Category classifies a video by its length and tags.
func Category(durationSeconds int64, tags []string) string {
	if IsShortForm(durationSeconds) {
		return CategoryShort
	}

	if len(tags) > 0 {
		joined := strings.ToLower(strings.Join(tags, " "))
		for _, tc := range tagCategories {
			for _, kw := range tc.keywords {
				if strings.Contains(joined, kw) {
					return tc.category
				}
			}
		}
	}

	switch {
	case durationSeconds <= 240:
		return CategoryShort
	case durationSeconds <= 1200:
		return CategoryMedium
	default:
		return CategoryLong
	}
}

// VideoCategory classifies a normalized video using its joined tags column.
func VideoCategory(v models.Video) string {
	var tags []string
	if v.Tags != "" {
		tags = strings.Split(v.Tags, ", ")
	}

	return Category(v.DurationSeconds, tags)
}

// CategoryCounts returns the number of videos per category.
func CategoryCounts(t models.Table) map[string]int {
	counts := make(map[string]int)
	for _, v := range t {
		counts[VideoCategory(v)]++
	}

	return counts
}

// SortedCategories returns the keys of counts in a stable order.
func SortedCategories(counts map[string]int) []string {
	return sortedKeys(counts)
}
