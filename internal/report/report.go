// Package report builds the descriptive statistics report over a normalized table.
//
// Each section of a report is computed independently. A section that fails
// carries its own Error and never prevents the other sections from running.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ytrend/internal/models"
)

// ErrNoData is reported when the table is empty.
var ErrNoData = errors.New("no data")

// Report is the full analysis of one table.
// Sections are nil when Error is set.
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Correlation *CorrelationAnalysis `json:"correlation_analysis,omitempty"`
	Groups      *GroupComparison     `json:"group_comparison,omitempty"`
	Top         *TopAnalysis         `json:"top_analysis,omitempty"`
	Basic       *BasicStats          `json:"basic_stats,omitempty"`
	Summary     *Summary             `json:"summary,omitempty"`
	ID          string               `json:"id"`
	Error       string               `json:"error,omitempty"`
}

// Summary is the headline of a report.
type Summary struct {
	GeneratedAt       time.Time `json:"analysis_date"`
	Error             string    `json:"error,omitempty"`
	TotalVideos       int       `json:"total_videos"`
	AvgViews          float64   `json:"avg_views"`
	AvgEngagementRate float64   `json:"avg_engagement"`
}

// Generator produces reports. The zero value is not usable; call NewGenerator.
type Generator struct {
	now   func() time.Time
	newID func() string
	pairs []ColumnPair
	// topShare is the fraction of videos treated as the top group in the Pareto analysis.
	topShare float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the time source used for generation timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDSource sets the report ID generator.
func WithIDSource(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// WithCorrelationPairs replaces the column pairs used by the correlation analysis.
func WithCorrelationPairs(pairs ...ColumnPair) Option {
	return func(g *Generator) {
		g.pairs = pairs
	}
}

// WithTopShare sets the fraction of videos treated as the top group.
// Values outside (0, 1] are ignored.
func WithTopShare(share float64) Option {
	return func(g *Generator) {
		if share > 0 && share <= 1 {
			g.topShare = share
		}
	}
}

// NewGenerator creates a generator with the default analyses.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		pairs:    DefaultCorrelationPairs,
		topShare: 0.1,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate analyzes t with a default generator.
func Generate(t models.Table) Report {
	return NewGenerator().Generate(t)
}

// Generate analyzes t. An empty table yields a report with only Error "no data" and no sections.
func (g *Generator) Generate(t models.Table) Report {
	now := g.now()

	r := Report{
		ID:          g.newID(),
		GeneratedAt: now,
	}

	if len(t) == 0 {
		r.Error = ErrNoData.Error()
		return r
	}

	r.Basic = section(func() (BasicStats, error) { return basicStatistics(t), nil },
		func(b *BasicStats, msg string) { b.Error = msg })
	r.Correlation = section(func() (CorrelationAnalysis, error) { return correlationAnalysis(t, g.pairs) },
		func(c *CorrelationAnalysis, msg string) { c.Error = msg })
	r.Groups = section(func() (GroupComparison, error) { return groupComparison(t), nil },
		func(gc *GroupComparison, msg string) { gc.Error = msg })
	r.Top = section(func() (TopAnalysis, error) { return topAnalysis(t, g.topShare) },
		func(ta *TopAnalysis, msg string) { ta.Error = msg })
	r.Summary = section(func() (Summary, error) { return summarize(t, now), nil },
		func(sm *Summary, msg string) { sm.Error = msg })

	return r
}

// section runs fn through capture and records any failure on the result.
func section[T any](fn func() (T, error), setErr func(*T, string)) *T {
	v, msg := capture(fn)
	setErr(&v, msg)

	return &v
}

// capture runs one section, turning an error or a panic into a message.
func capture[T any](fn func() (T, error)) (out T, errMsg string) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			out = zero
			errMsg = fmt.Sprintf("analysis failed: %v", rec)
		}
	}()

	v, err := fn()
	if err != nil {
		return v, err.Error()
	}

	return v, ""
}

func summarize(t models.Table, now time.Time) Summary {
	var views, engagement float64
	for _, v := range t {
		views += float64(v.ViewCount)
		engagement += v.EngagementRate()
	}

	n := float64(len(t))

	return Summary{
		TotalVideos:       len(t),
		AvgViews:          round(views/n, 2),
		AvgEngagementRate: round(engagement/n, 6),
		GeneratedAt:       now,
	}
}
