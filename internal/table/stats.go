package table

import (
	"math"
	"sort"

	"ytrend/internal/models"
)

// Stats summarizes a table. Floating values are rounded to two decimals.
type Stats struct {
	TotalVideos    int     `json:"total_videos"`
	ShortFormCount int     `json:"short_form_count"`
	LongFormCount  int     `json:"long_form_count"`
	AvgViews       float64 `json:"avg_views"`
	MedianViews    float64 `json:"median_views"`
	MaxViews       int64   `json:"max_views"`
	MinViews       int64   `json:"min_views"`
	AvgLikes       float64 `json:"avg_likes"`
	MedianLikes    float64 `json:"median_likes"`
	MaxLikes       int64   `json:"max_likes"`
	MinLikes       int64   `json:"min_likes"`
	AvgComments    float64 `json:"avg_comments"`
	MedianComments float64 `json:"median_comments"`
	MaxComments    int64   `json:"max_comments"`
	MinComments    int64   `json:"min_comments"`
	AvgDuration    float64 `json:"avg_duration"`
	MedianDuration float64 `json:"median_duration"`
	MaxDuration    int64   `json:"max_duration"`
	MinDuration    int64   `json:"min_duration"`
	AvgLikeRate    float64 `json:"avg_like_rate"`
	AvgCommentRate float64 `json:"avg_comment_rate"`
}

// Pair is one key/value row of a stats sheet.
type Pair struct {
	Key   string
	Value any
}

// SummaryStatistics computes Stats for t. An empty table yields zero Stats.
func SummaryStatistics(t models.Table) Stats {
	if len(t) == 0 {
		return Stats{}
	}

	s := Stats{TotalVideos: len(t)}

	views := make([]int64, len(t))
	likes := make([]int64, len(t))
	comments := make([]int64, len(t))
	durations := make([]int64, len(t))

	var likeRates, commentRates float64

	for i, v := range t {
		if v.IsShortForm {
			s.ShortFormCount++
		}

		views[i] = v.ViewCount
		likes[i] = v.LikeCount
		comments[i] = v.CommentCount
		durations[i] = v.DurationSeconds
		likeRates += v.LikeRate
		commentRates += v.CommentRate
	}

	s.LongFormCount = s.TotalVideos - s.ShortFormCount

	s.AvgViews, s.MedianViews, s.MinViews, s.MaxViews = describe(views)
	s.AvgLikes, s.MedianLikes, s.MinLikes, s.MaxLikes = describe(likes)
	s.AvgComments, s.MedianComments, s.MinComments, s.MaxComments = describe(comments)
	s.AvgDuration, s.MedianDuration, s.MinDuration, s.MaxDuration = describe(durations)
	s.AvgLikeRate = round2(likeRates / float64(len(t)))
	s.AvgCommentRate = round2(commentRates / float64(len(t)))

	return s
}

// describe returns the rounded mean and median plus min and max of a non-empty slice.
func describe(values []int64) (mean, median float64, lo, hi int64) {
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum float64
	for _, v := range sorted {
		sum += float64(v)
	}

	n := len(sorted)
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
	}

	return round2(sum / float64(n)), round2(median), sorted[0], sorted[n-1]
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Pairs returns the statistics as ordered key/value rows.
func (s Stats) Pairs() []Pair {
	return []Pair{
		{"total_videos", s.TotalVideos},
		{"short_form_count", s.ShortFormCount},
		{"long_form_count", s.LongFormCount},
		{"avg_views", s.AvgViews},
		{"median_views", s.MedianViews},
		{"max_views", s.MaxViews},
		{"min_views", s.MinViews},
		{"avg_likes", s.AvgLikes},
		{"median_likes", s.MedianLikes},
		{"max_likes", s.MaxLikes},
		{"min_likes", s.MinLikes},
		{"avg_comments", s.AvgComments},
		{"median_comments", s.MedianComments},
		{"max_comments", s.MaxComments},
		{"min_comments", s.MinComments},
		{"avg_like_rate", s.AvgLikeRate},
		{"avg_comment_rate", s.AvgCommentRate},
		{"avg_duration", s.AvgDuration},
		{"median_duration", s.MedianDuration},
		{"max_duration", s.MaxDuration},
		{"min_duration", s.MinDuration},
	}
}
