package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"ytrend/internal/models"
	"ytrend/internal/table"
)

const (
	// NoWeekday is reported when no top video has a publish time.
	NoWeekday = "N/A"
	// keywordLimit is the number of title keywords kept.
	keywordLimit = 5
	// patternKeywords is the number of keywords quoted in the success patterns.
	patternKeywords = 3
)

// Pareto measures how concentrated views are in the top videos.
type Pareto struct {
	Interpretation      string  `json:"interpretation"`
	TopCount            int     `json:"top_video_count"`
	TotalCount          int     `json:"total_video_count"`
	TopPercentage       float64 `json:"top_percentage"`
	ViewSharePercentage float64 `json:"view_share_percentage"`
}

// Characteristics describes the top videos.
type Characteristics struct {
	MostCommonWeekday  string   `json:"most_common_weekday"`
	CommonKeywords     []string `json:"common_keywords"`
	AvgDurationSeconds float64  `json:"avg_duration_seconds"`
	AvgDurationMinutes float64  `json:"avg_duration_minutes"`
	AvgEngagementRate  float64  `json:"avg_engagement_rate"`
}

// TopAnalysis is the Pareto analysis of a table.
type TopAnalysis struct {
	Error           string          `json:"error,omitempty"`
	SuccessPatterns []string        `json:"success_patterns"`
	Characteristics Characteristics `json:"top_video_characteristics"`
	Pareto          Pareto          `json:"pareto_analysis"`
}

// TopCount returns ceil(share*n), at least 1 for a non-empty table.
func TopCount(n int, share float64) int {
	if n <= 0 {
		return 0
	}

	k := int(math.Ceil(float64(n) * share))

	return max(1, min(k, n))
}

func topAnalysis(t models.Table, share float64) (TopAnalysis, error) {
	top, err := table.TopPerformers(t, models.ColViewCount, TopCount(len(t), share))
	if err != nil {
		return TopAnalysis{}, err
	}

	var total, topViews float64
	for _, v := range t {
		total += float64(v.ViewCount)
	}

	for _, v := range top {
		topViews += float64(v.ViewCount)
	}

	var viewShare float64
	if total > 0 {
		viewShare = topViews / total * 100
	}

	p := Pareto{
		TopCount:            len(top),
		TotalCount:          len(t),
		TopPercentage:       share * 100,
		ViewSharePercentage: round(viewShare, 2),
		Interpretation:      fmt.Sprintf("top %d videos hold %.1f%% of all views", len(top), viewShare),
	}

	c := characterize(top)

	return TopAnalysis{
		Pareto:          p,
		Characteristics: c,
		SuccessPatterns: successPatterns(c),
	}, nil
}

func characterize(top models.Table) Characteristics {
	durations := make([]float64, len(top))
	engagement := make([]float64, len(top))
	titles := make([]string, len(top))

	for i, v := range top {
		durations[i] = float64(v.DurationSeconds)
		engagement[i] = v.EngagementRate()
		titles[i] = v.Title
	}

	avgSeconds := mean(durations)

	return Characteristics{
		AvgDurationSeconds: round(avgSeconds, 2),
		AvgDurationMinutes: round(avgSeconds/60, 2),
		AvgEngagementRate:  round(mean(engagement), 6),
		MostCommonWeekday:  mostCommonWeekday(top),
		CommonKeywords:     Keywords(titles, keywordLimit),
	}
}

// mostCommonWeekday returns the English name of the most frequent UTC publish
// day. Ties go to the day seen first.
func mostCommonWeekday(t models.Table) string {
	var days []string
	for _, v := range t {
		if v.PublishedAt.Valid {
			days = append(days, v.PublishedAt.Time.UTC().Weekday().String())
		}
	}

	if best := mostFrequent(days, 1); len(best) > 0 {
		return best[0]
	}

	return NoWeekday
}

// Keywords returns up to limit whitespace-separated words longer than one
// rune, most frequent first. Ties go to the word seen first.
func Keywords(titles []string, limit int) []string {
	var words []string
	for _, title := range titles {
		for _, w := range strings.Fields(title) {
			if utf8.RuneCountInString(w) > 1 {
				words = append(words, w)
			}
		}
	}

	return mostFrequent(words, limit)
}

func mostFrequent(items []string, limit int) []string {
	counts := make(map[string]int)
	var order []string

	for _, it := range items {
		if counts[it] == 0 {
			order = append(order, it)
		}

		counts[it]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}

	return order
}

func successPatterns(c Characteristics) []string {
	patterns := []string{}

	if c.AvgDurationMinutes > 0 {
		patterns = append(patterns, fmt.Sprintf("average length of top videos: %.1f min", c.AvgDurationMinutes))
	}

	if c.MostCommonWeekday != NoWeekday {
		patterns = append(patterns, "most common upload day of top videos: "+c.MostCommonWeekday)
	}

	if len(c.CommonKeywords) > 0 {
		kw := c.CommonKeywords[:min(patternKeywords, len(c.CommonKeywords))]
		patterns = append(patterns, "frequent title keywords: "+strings.Join(kw, ", "))
	}

	return patterns
}
