package formatter

import (
	"fmt"
	"io"
	"strings"

	"ytrend/internal/report"
	"ytrend/internal/table"
)

// RenderStats writes summary statistics as a two column table.
func RenderStats(w io.Writer, s table.Stats) error {
	rows := [][]string{{"stat", "value"}}
	for _, p := range s.Pairs() {
		rows = append(rows, []string{p.Key, fmt.Sprint(p.Value)})
	}

	return writeLines(w, alignRows(rows))
}

// RenderReport writes a plain text rendering of r.
func RenderReport(w io.Writer, r report.Report) error {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("Report %s (%s)", r.ID, r.GeneratedAt.Format("2006-01-02 15:04:05"))

	if r.Error != "" {
		add("error: %s", r.Error)
		return writeLines(w, lines)
	}

	add("")
	add("## Summary")
	if r.Summary.Error != "" {
		add("error: %s", r.Summary.Error)
	} else {
		add("videos: %d, average views: %s, average engagement: %.2f%%",
			r.Summary.TotalVideos, FormatNumber(int64(r.Summary.AvgViews)), r.Summary.AvgEngagementRate*100)
	}

	add("")
	add("## Correlation")
	if r.Correlation.Error != "" {
		add("error: %s", r.Correlation.Error)
	} else {
		for _, rel := range r.Correlation.Relations {
			add("- %s: %.3f (%s, %s)", rel.Pair, rel.Coefficient, rel.Strength, rel.Direction)
		}

		add("%s", r.Correlation.Summary)
	}

	add("")
	add("## Groups")
	if r.Groups.Error != "" {
		add("error: %s", r.Groups.Error)
	} else {
		d := r.Groups.Days
		add("weekend %s vs weekday %s (ratio %.2f), upload on: %s",
			FormatNumber(int64(d.WeekendAvgViews)), FormatNumber(int64(d.WeekdayAvgViews)), d.Ratio, d.Recommendation)
		lines = append(lines, bucketLines("length", r.Groups.Length)...)
		lines = append(lines, bucketLines("engagement", r.Groups.Engagement)...)
	}

	add("")
	add("## Top videos")
	if r.Top.Error != "" {
		add("error: %s", r.Top.Error)
	} else {
		add("%s", r.Top.Pareto.Interpretation)
		for _, p := range r.Top.SuccessPatterns {
			add("- %s", p)
		}
	}

	return writeLines(w, lines)
}

func bucketLines(name string, c report.BucketComparison) []string {
	parts := make([]string, len(c.Buckets))
	for i, b := range c.Buckets {
		parts[i] = fmt.Sprintf("%s %s (%d)", b.Label, FormatNumber(int64(b.AvgViews)), b.Count)
	}

	line := fmt.Sprintf("%s: %s", name, strings.Join(parts, ", "))
	if c.Recommendation != "" {
		line += ", best: " + c.Recommendation
	}

	return []string{line}
}
