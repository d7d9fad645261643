package report

import (
	"time"

	"ytrend/internal/models"
)

// Upload day recommendations.
const (
	RecommendWeekend = "weekend"
	RecommendWeekday = "weekday"
)

// Engagement levels.
const (
	EngagementLow    = "low"
	EngagementMedium = "medium"
	EngagementHigh   = "high"
)

// Bucket is a labelled half-open range [Min, Max). A zero Max is unbounded.
type Bucket struct {
	Label string
	Min   float64
	Max   float64
}

func (b Bucket) contains(x float64) bool {
	return x >= b.Min && (b.Max == 0 || x < b.Max)
}

// DurationBuckets split videos by length in seconds.
var DurationBuckets = []Bucket{
	{Label: "under 5 min", Min: 0, Max: 300},
	{Label: "5-15 min", Min: 300, Max: 900},
	{Label: "15+ min", Min: 900},
}

// EngagementBuckets split videos by engagement rate.
var EngagementBuckets = []Bucket{
	{Label: EngagementLow, Min: 0, Max: 0.02},
	{Label: EngagementMedium, Min: 0.02, Max: 0.05},
	{Label: EngagementHigh, Min: 0.05},
}

// DayComparison compares weekend and weekday uploads.
type DayComparison struct {
	Recommendation  string  `json:"recommendation"`
	WeekendAvgViews float64 `json:"weekend_avg_views"`
	WeekdayAvgViews float64 `json:"weekday_avg_views"`
	Ratio           float64 `json:"difference_ratio"`
	WeekendCount    int     `json:"weekend_count"`
	WeekdayCount    int     `json:"weekday_count"`
}

// BucketViews is the average view count of one bucket.
type BucketViews struct {
	Label    string  `json:"category"`
	AvgViews float64 `json:"avg_views"`
	Count    int     `json:"video_count"`
}

// BucketComparison lists buckets in their declared order.
type BucketComparison struct {
	Recommendation string        `json:"recommendation,omitempty"`
	Buckets        []BucketViews `json:"categories"`
}

// GroupComparison compares average views across groups of videos.
type GroupComparison struct {
	Error      string           `json:"error,omitempty"`
	Days       DayComparison    `json:"weekend_vs_weekday"`
	Length     BucketComparison `json:"length_comparison"`
	Engagement BucketComparison `json:"engagement_comparison"`
}

func groupComparison(t models.Table) GroupComparison {
	return GroupComparison{
		Days:       compareDays(t),
		Length:     compareBuckets(t, DurationBuckets, func(v models.Video) float64 { return float64(v.DurationSeconds) }),
		Engagement: compareBuckets(t, EngagementBuckets, models.Video.EngagementRate),
	}
}

// compareDays groups by the UTC weekday of publication. Videos without a
// publish time belong to neither group.
func compareDays(t models.Table) DayComparison {
	var weekend, weekday []float64

	for _, v := range t {
		if !v.PublishedAt.Valid {
			continue
		}

		if isWeekend(v.PublishedAt.Time.UTC().Weekday()) {
			weekend = append(weekend, float64(v.ViewCount))
		} else {
			weekday = append(weekday, float64(v.ViewCount))
		}
	}

	c := DayComparison{
		WeekendAvgViews: round(mean(weekend), 2),
		WeekdayAvgViews: round(mean(weekday), 2),
		WeekendCount:    len(weekend),
		WeekdayCount:    len(weekday),
		Ratio:           1,
		Recommendation:  RecommendWeekday,
	}

	if c.WeekdayAvgViews > 0 {
		c.Ratio = round(mean(weekend)/mean(weekday), 4)
	}

	if c.WeekendAvgViews > c.WeekdayAvgViews {
		c.Recommendation = RecommendWeekend
	}

	return c
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// compareBuckets averages view counts per bucket and recommends the non-empty
// bucket with the highest average. Earlier buckets win ties.
func compareBuckets(t models.Table, buckets []Bucket, value func(models.Video) float64) BucketComparison {
	sums := make([]float64, len(buckets))
	counts := make([]int, len(buckets))

	for _, v := range t {
		x := value(v)
		for i, b := range buckets {
			if b.contains(x) {
				sums[i] += float64(v.ViewCount)
				counts[i]++

				break
			}
		}
	}

	out := BucketComparison{Buckets: make([]BucketViews, len(buckets))}
	best := -1

	for i, b := range buckets {
		bv := BucketViews{Label: b.Label, Count: counts[i]}
		if counts[i] > 0 {
			bv.AvgViews = round(sums[i]/float64(counts[i]), 2)
			if best < 0 || bv.AvgViews > out.Buckets[best].AvgViews {
				best = i
			}
		}

		out.Buckets[i] = bv
	}

	if best >= 0 {
		out.Recommendation = buckets[best].Label
	}

	return out
}
