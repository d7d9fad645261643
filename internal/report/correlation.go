package report

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"ytrend/internal/models"
)

// ErrNonNumericColumn is returned when a correlation pair names a column that
// is missing or not numeric.
var ErrNonNumericColumn = errors.New("column is not numeric")

// Correlation strengths.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthWeak     = "weak"
)

// Correlation directions.
const (
	DirectionPositive = "positive"
	DirectionNegative = "negative"
	DirectionNone     = "none"
)

// ColumnPair names two columns to correlate.
type ColumnPair struct {
	X string
	Y string
}

// Key identifies the pair in the report, e.g. "view_count_like_count".
func (p ColumnPair) Key() string {
	return p.X + "_" + p.Y
}

// DefaultCorrelationPairs relates views to likes, comments and duration.
var DefaultCorrelationPairs = []ColumnPair{
	{X: models.ColViewCount, Y: models.ColLikeCount},
	{X: models.ColViewCount, Y: models.ColCommentCount},
	{X: models.ColViewCount, Y: models.ColDurationSeconds},
}

// Relation is the correlation between one pair of columns.
type Relation struct {
	Pair           string  `json:"pair"`
	Strength       string  `json:"strength"`
	Direction      string  `json:"direction"`
	Interpretation string  `json:"interpretation"`
	Coefficient    float64 `json:"correlation"`
}

// CorrelationAnalysis lists the relations in pair order.
type CorrelationAnalysis struct {
	Error     string     `json:"error,omitempty"`
	Summary   string     `json:"summary"`
	Relations []Relation `json:"correlations"`
}

func correlationAnalysis(t models.Table, pairs []ColumnPair) (CorrelationAnalysis, error) {
	relations := make([]Relation, 0, len(pairs))

	for _, p := range pairs {
		xs, err := columnValues(t, p.X)
		if err != nil {
			return CorrelationAnalysis{}, err
		}

		ys, err := columnValues(t, p.Y)
		if err != nil {
			return CorrelationAnalysis{}, err
		}

		r := Pearson(xs, ys)
		relations = append(relations, Relation{
			Pair:           p.Key(),
			Coefficient:    r,
			Strength:       Strength(r),
			Direction:      Direction(r),
			Interpretation: interpret(p, r),
		})
	}

	return CorrelationAnalysis{
		Relations: relations,
		Summary:   summarizeRelations(relations),
	}, nil
}

func columnValues(t models.Table, column string) ([]float64, error) {
	if column != ColEngagementRate {
		c, ok := models.LookupColumn(column)
		if !ok || c.Kind != models.KindNumeric {
			return nil, fmt.Errorf("%w: %s", ErrNonNumericColumn, column)
		}
	}

	out := make([]float64, len(t))
	for i, v := range t {
		out[i], _ = metric(v, column)
	}

	return out, nil
}

// Pearson returns the correlation coefficient of xs and ys. It returns 0 when
// there are fewer than two points or either series has no variance.
func Pearson(xs, ys []float64) float64 {
	n := min(len(xs), len(ys))
	if n < 2 {
		return 0
	}

	mx := mean(xs[:n])
	my := mean(ys[:n])

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	if sxx == 0 || syy == 0 {
		return 0
	}

	r := sxy / math.Sqrt(sxx*syy)
	if math.IsNaN(r) {
		return 0
	}

	return math.Max(-1, math.Min(1, r))
}

// Strength classifies the magnitude of r.
func Strength(r float64) string {
	switch a := math.Abs(r); {
	case a >= 0.7:
		return StrengthStrong
	case a >= 0.3:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Direction labels the sign of r.
func Direction(r float64) string {
	switch {
	case r > 0:
		return DirectionPositive
	case r < 0:
		return DirectionNegative
	default:
		return DirectionNone
	}
}

func interpret(p ColumnPair, r float64) string {
	switch Direction(r) {
	case DirectionPositive:
		return fmt.Sprintf("%s rises with %s: %s relation (%.2f)", p.Y, p.X, Strength(r), r)
	case DirectionNegative:
		return fmt.Sprintf("%s falls as %s rises: %s relation (%.2f)", p.Y, p.X, Strength(r), r)
	default:
		return fmt.Sprintf("no linear relation between %s and %s", p.X, p.Y)
	}
}

func summarizeRelations(relations []Relation) string {
	if len(relations) == 0 {
		return "no relations analyzed"
	}

	var strong, weak int
	for _, rel := range relations {
		switch rel.Strength {
		case StrengthStrong:
			strong++
		case StrengthWeak:
			weak++
		}
	}

	parts := []string{fmt.Sprintf("%d relations analyzed", len(relations))}
	if strong > 0 {
		parts = append(parts, fmt.Sprintf("strong: %d", strong))
	}

	if weak > 0 {
		parts = append(parts, fmt.Sprintf("weak: %d", weak))
	}

	return strings.Join(parts, ", ")
}
