package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ytrend/internal/models"
)

// Reasons a raw field was replaced by its default.
var (
	ErrFieldMissing     = errors.New("field missing")
	ErrFieldWrongType   = errors.New("field has wrong type")
	ErrFieldUnparseable = errors.New("field could not be parsed")
	ErrFieldNegative    = errors.New("field is negative")
)

// Issue records one raw field that was defaulted during normalization.
type Issue struct {
	Err     error
	Field   string
	VideoID string
}

// Error implements error.
func (i Issue) Error() string {
	if i.VideoID == "" {
		return fmt.Sprintf("%s: %v", i.Field, i.Err)
	}

	return fmt.Sprintf("%s[%s]: %v", i.Field, i.VideoID, i.Err)
}

// Unwrap returns the underlying reason.
func (i Issue) Unwrap() error {
	return i.Err
}

// Validator reports which fields of a raw record fall back to defaults.
type Validator struct {
	// required fields are reported when missing; other fields only when malformed
	required map[string]bool
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{
		required: map[string]bool{
			models.RawVideoID:     true,
			models.RawTitle:       true,
			models.RawPublishedAt: true,
			models.RawDuration:    true,
			models.RawViewCount:   true,
		},
	}
}

// Validate inspects raw and returns one Issue per defaulted field. It never rejects a record.
func (v *Validator) Validate(raw models.RawVideo) []Issue {
	id, _ := raw[models.RawVideoID].(string)

	var issues []Issue

	add := func(field string, err error) {
		issues = append(issues, Issue{Field: field, VideoID: id, Err: err})
	}

	for _, key := range []string{models.RawVideoID, models.RawTitle, models.RawChannelTitle, models.RawDescription, models.RawThumbnailURL} {
		if err := v.checkString(raw, key); err != nil {
			add(key, err)
		}
	}

	if err := v.checkString(raw, models.RawPublishedAt); err != nil {
		add(models.RawPublishedAt, err)
	} else if s, ok := raw[models.RawPublishedAt].(string); ok && !ParseTimestamp(s).Valid {
		add(models.RawPublishedAt, ErrFieldUnparseable)
	}

	if err := v.checkString(raw, models.RawDuration); err != nil {
		add(models.RawDuration, err)
	} else if s, ok := raw[models.RawDuration].(string); ok && !durationPattern.MatchString(s) {
		add(models.RawDuration, ErrFieldUnparseable)
	}

	for _, key := range []string{models.RawViewCount, models.RawLikeCount, models.RawCommentCount} {
		if err := v.checkCount(raw, key); err != nil {
			add(key, err)
		}
	}

	if val, ok := raw[models.RawTags]; ok && val != nil {
		switch val.(type) {
		case []string, []any:
		default:
			add(models.RawTags, ErrFieldWrongType)
		}
	}

	return issues
}

func (v *Validator) checkString(raw models.RawVideo, key string) error {
	val, ok := raw[key]
	if !ok || val == nil {
		if v.required[key] {
			return ErrFieldMissing
		}

		return nil
	}

	if _, ok := val.(string); !ok {
		return ErrFieldWrongType
	}

	return nil
}

func (v *Validator) checkCount(raw models.RawVideo, key string) error {
	val, ok := raw[key]
	if !ok || val == nil {
		if v.required[key] {
			return ErrFieldMissing
		}

		return nil
	}

	if _, ok := parseCount(val); ok {
		return nil
	}

	if isNegative(val) {
		return ErrFieldNegative
	}

	switch val.(type) {
	case string, float64, int, int64, json.Number:
		return ErrFieldUnparseable
	}

	return ErrFieldWrongType
}

func isNegative(val any) bool {
	switch x := val.(type) {
	case int:
		return x < 0
	case int64:
		return x < 0
	case float64:
		return x < 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f < 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return err == nil && f < 0
	}

	return false
}
