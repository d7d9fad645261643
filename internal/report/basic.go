package report

import (
	"math"
	"sort"

	"ytrend/internal/models"
)

// ColEngagementRate names the derived engagement rate, which is not a stored column.
const ColEngagementRate = "engagement_rate"

// Describe holds the descriptive statistics of one metric.
type Describe struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// BasicStats describes the main metrics of a table.
type BasicStats struct {
	Error          string   `json:"error,omitempty"`
	Views          Describe `json:"view_count"`
	Likes          Describe `json:"like_count"`
	Comments       Describe `json:"comment_count"`
	EngagementRate Describe `json:"engagement_rate"`
}

func basicStatistics(t models.Table) BasicStats {
	views := make([]float64, len(t))
	likes := make([]float64, len(t))
	comments := make([]float64, len(t))
	engagement := make([]float64, len(t))

	for i, v := range t {
		views[i] = float64(v.ViewCount)
		likes[i] = float64(v.LikeCount)
		comments[i] = float64(v.CommentCount)
		engagement[i] = v.EngagementRate()
	}

	return BasicStats{
		Views:          describe(views),
		Likes:          describe(likes),
		Comments:       describe(comments),
		EngagementRate: describe(engagement),
	}
}

// describe computes the statistics of xs. The standard deviation is the
// sample deviation and is 0 for fewer than two values.
func describe(xs []float64) Describe {
	if len(xs) == 0 {
		return Describe{}
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	m := mean(xs)

	var std float64
	if len(xs) > 1 {
		var ss float64
		for _, x := range xs {
			ss += (x - m) * (x - m)
		}

		std = math.Sqrt(ss / float64(len(xs)-1))
	}

	return Describe{
		Mean:   m,
		Median: median(sorted),
		Std:    std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	var sum float64
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// metric reads a numeric column or the derived engagement rate.
func metric(v models.Video, column string) (float64, bool) {
	if column == ColEngagementRate {
		return v.EngagementRate(), true
	}

	return v.Number(column)
}
