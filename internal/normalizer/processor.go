// Package normalizer turns raw video records into the fixed normalized schema.
package normalizer

import (
	"errors"
	"sort"

	"ytrend/internal/logger"
	"ytrend/internal/models"
)

// Processor runs the validator and transformer over a batch of raw records.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	log         *logger.Logger
}

// BatchResult is the normalized table plus the fields that were defaulted.
type BatchResult struct {
	Table  models.Table
	Issues []Issue
}

// NewProcessor creates a new processor instance. log may be nil.
func NewProcessor(log *logger.Logger) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
		log:         log,
	}
}

// Normalize converts one raw record. It never fails.
func (p *Processor) Normalize(raw models.RawVideo) models.Video {
	return p.transformer.Transform(raw)
}

// NormalizeAll converts a batch of raw records, preserving order.
func (p *Processor) NormalizeAll(raws []models.RawVideo) models.Table {
	table := make(models.Table, 0, len(raws))
	for _, raw := range raws {
		table = append(table, p.transformer.Transform(raw))
	}

	return table
}

// Process normalizes a batch and collects every defaulted field.
func (p *Processor) Process(raws []models.RawVideo) BatchResult {
	var issues []Issue
	for _, raw := range raws {
		issues = append(issues, p.validator.Validate(raw)...)
	}

	result := BatchResult{
		Table:  p.NormalizeAll(raws),
		Issues: issues,
	}

	if p.log != nil {
		p.log.Info("normalized batch", "records", len(result.Table), "defaulted_fields", len(issues))

		counts := result.IssueCounts()
		for _, field := range sortedKeys(counts) {
			p.log.Debug("defaulted field", "field", field, "count", counts[field])
		}
	}

	return result
}

// IssueCounts returns the number of defaulted values per field.
func (r BatchResult) IssueCounts() map[string]int {
	counts := make(map[string]int)
	for _, issue := range r.Issues {
		counts[issue.Field]++
	}

	return counts
}

// Err joins all issues into one error, or returns nil when nothing was defaulted.
func (r BatchResult) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}

	errs := make([]error, len(r.Issues))
	for i, issue := range r.Issues {
		errs[i] = issue
	}

	return errors.Join(errs...)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Normalize converts one raw record with a default transformer.
func Normalize(raw models.RawVideo) models.Video {
	return NewTransformer().Transform(raw)
}

// NormalizeAll converts a batch of raw records with a default transformer.
func NormalizeAll(raws []models.RawVideo) models.Table {
	return NewProcessor(nil).NormalizeAll(raws)
}
