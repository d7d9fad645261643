package table

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ytrend/internal/models"
)

// DateLayout is the format of date bounds given on the command line.
const DateLayout = "2006-01-02"

// Date range errors.
var (
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrDateRangeReversed = errors.New("start date is after end date")
	ErrDateInFuture      = errors.New("end date is in the future")
)

// Filter holds the optional predicates applied by Apply. A nil or zero option imposes no constraint.
type Filter struct {
	MinViews *int64
	MaxViews *int64
	MinLikes *int64
	MaxLikes *int64
	DateFrom *time.Time
	DateTo   *time.Time
	Keyword  string
	// ShortFormOnly wins when both form flags are set.
	ShortFormOnly bool
	LongFormOnly  bool
}

// Apply returns the videos of t that satisfy every option of f, in their original order.
func Apply(t models.Table, f Filter) models.Table {
	out := make(models.Table, 0, len(t))

	for _, v := range t {
		if f.Match(v) {
			out = append(out, v)
		}
	}

	return out
}

// Match reports whether a single video passes the filter.
func (f Filter) Match(v models.Video) bool {
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(v.Title), kw) && !strings.Contains(strings.ToLower(v.Tags), kw) {
			return false
		}
	}

	if !inRange(v.ViewCount, f.MinViews, f.MaxViews) || !inRange(v.LikeCount, f.MinLikes, f.MaxLikes) {
		return false
	}

	switch {
	case f.ShortFormOnly:
		if !v.IsShortForm {
			return false
		}
	case f.LongFormOnly:
		if v.IsShortForm {
			return false
		}
	}

	if f.DateFrom != nil || f.DateTo != nil {
		if !v.PublishedAt.Valid {
			return false
		}

		if f.DateFrom != nil && v.PublishedAt.Time.Before(*f.DateFrom) {
			return false
		}

		if f.DateTo != nil && v.PublishedAt.Time.After(*f.DateTo) {
			return false
		}
	}

	return true
}

func inRange(n int64, lo, hi *int64) bool {
	if lo != nil && n < *lo {
		return false
	}

	if hi != nil && n > *hi {
		return false
	}

	return true
}

// Int64 returns a pointer to n, for building filters.
func Int64(n int64) *int64 {
	return &n
}

// ParseDate parses a YYYY-MM-DD bound as midnight UTC. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return &t, nil
}

// ValidateDateRange checks that from is not after to and that to is not in the future.
func ValidateDateRange(from, to string, now time.Time) error {
	start, err := ParseDate(from)
	if err != nil {
		return err
	}

	end, err := ParseDate(to)
	if err != nil {
		return err
	}

	if start != nil && end != nil && start.After(*end) {
		return ErrDateRangeReversed
	}

	if end != nil && end.After(now) {
		return ErrDateInFuture
	}

	return nil
}
