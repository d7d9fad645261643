// Package table implements the pure sort, filter, statistics and top-N operations over a normalized table.
package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"ytrend/internal/models"
)

// Operation errors.
var (
	ErrUnknownColumn = models.ErrUnknownColumn
	ErrUnknownMetric = errors.New("unknown metric")
)

// Sort returns a copy of t stably ordered by column. The input is not modified.
func Sort(t models.Table, column string, ascending bool) (models.Table, error) {
	col, ok := models.LookupColumn(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	less := lessFunc(col)
	out := t.Clone()

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return less(out[i], out[j])
		}

		return less(out[j], out[i])
	})

	return out, nil
}

// lessFunc returns the natural ordering of a column.
func lessFunc(col models.Column) func(a, b models.Video) bool {
	switch col.Kind {
	case models.KindNumeric:
		return func(a, b models.Video) bool {
			x, _ := a.Number(col.Name)
			y, _ := b.Number(col.Name)

			return x < y
		}
	case models.KindTime:
		return func(a, b models.Video) bool {
			return a.PublishedAt.Before(b.PublishedAt)
		}
	case models.KindBool:
		return func(a, b models.Video) bool {
			return !a.IsShortForm && b.IsShortForm
		}
	default:
		return func(a, b models.Video) bool {
			x, _ := a.Text(col.Name)
			y, _ := b.Text(col.Name)

			return strings.Compare(x, y) < 0
		}
	}
}

// TopPerformers returns the n videos with the largest metric, highest first.
// Ties keep their original order.
func TopPerformers(t models.Table, metric string, n int) (models.Table, error) {
	col, ok := models.LookupColumn(metric)
	if !ok || col.Kind != models.KindNumeric {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	if n <= 0 {
		return models.Table{}, nil
	}

	sorted, err := Sort(t, metric, false)
	if err != nil {
		return nil, err
	}

	if n < len(sorted) {
		sorted = sorted[:n:n]
	}

	return sorted, nil
}
