package models

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownColumn is returned for a column name outside the schema.
var ErrUnknownColumn = errors.New("unknown column")

// Table is an ordered set of normalized videos.
// Operations over a Table return a new Table and leave the input untouched.
type Table []Video

// Clone returns a copy of the table that shares no backing array with t.
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}

	out := make(Table, len(t))
	copy(out, t)

	return out
}

// ColumnKind describes how a column's values compare.
type ColumnKind int

// Column kinds.
const (
	KindText ColumnKind = iota
	KindNumeric
	KindBool
	KindTime
)

// Column is one field of the normalized schema.
type Column struct {
	Name string
	Kind ColumnKind
}

// Column names of the normalized schema.
const (
	ColVideoID           = "video_id"
	ColTitle             = "title"
	ColChannelTitle      = "channel_title"
	ColPublishedAt       = "published_at"
	ColViewCount         = "view_count"
	ColLikeCount         = "like_count"
	ColCommentCount      = "comment_count"
	ColDurationSeconds   = "duration_seconds"
	ColDurationFormatted = "duration_formatted"
	ColIsShortForm       = "is_short_form"
	ColTags              = "tags"
	ColTagsCount         = "tags_count"
	ColDescriptionLength = "description_length"
	ColThumbnailURL      = "thumbnail_url"
	ColVideoURL          = "video_url"
	ColLikeRate          = "like_rate"
	ColCommentRate       = "comment_rate"
	ColEngagementScore   = "engagement_score"
	ColViewTier          = "view_tier"
)

// Schema lists the normalized columns in export order.
var Schema = []Column{
	{ColVideoID, KindText},
	{ColTitle, KindText},
	{ColChannelTitle, KindText},
	{ColPublishedAt, KindTime},
	{ColViewCount, KindNumeric},
	{ColLikeCount, KindNumeric},
	{ColCommentCount, KindNumeric},
	{ColDurationSeconds, KindNumeric},
	{ColDurationFormatted, KindText},
	{ColIsShortForm, KindBool},
	{ColTags, KindText},
	{ColTagsCount, KindNumeric},
	{ColDescriptionLength, KindNumeric},
	{ColThumbnailURL, KindText},
	{ColVideoURL, KindText},
	{ColLikeRate, KindNumeric},
	{ColCommentRate, KindNumeric},
	{ColEngagementScore, KindNumeric},
	{ColViewTier, KindText},
}

// LookupColumn finds a column by name.
func LookupColumn(name string) (Column, bool) {
	for _, c := range Schema {
		if c.Name == name {
			return c, true
		}
	}

	return Column{}, false
}

// ColumnNames returns the schema column names in order.
func ColumnNames() []string {
	names := make([]string, len(Schema))
	for i, c := range Schema {
		names[i] = c.Name
	}

	return names
}

// Number returns the value of a numeric column. ok is false for other columns.
func (v Video) Number(column string) (float64, bool) {
	switch column {
	case ColViewCount:
		return float64(v.ViewCount), true
	case ColLikeCount:
		return float64(v.LikeCount), true
	case ColCommentCount:
		return float64(v.CommentCount), true
	case ColDurationSeconds:
		return float64(v.DurationSeconds), true
	case ColTagsCount:
		return float64(v.TagsCount), true
	case ColDescriptionLength:
		return float64(v.DescriptionLength), true
	case ColEngagementScore:
		return float64(v.EngagementScore), true
	case ColLikeRate:
		return v.LikeRate, true
	case ColCommentRate:
		return v.CommentRate, true
	}

	return 0, false
}

// Text returns the value of a text column. ok is false for other columns.
func (v Video) Text(column string) (string, bool) {
	switch column {
	case ColVideoID:
		return v.VideoID, true
	case ColTitle:
		return v.Title, true
	case ColChannelTitle:
		return v.ChannelTitle, true
	case ColDurationFormatted:
		return v.DurationFormatted, true
	case ColTags:
		return v.Tags, true
	case ColThumbnailURL:
		return v.ThumbnailURL, true
	case ColVideoURL:
		return v.VideoURL, true
	case ColViewTier:
		return string(v.ViewTier), true
	}

	return "", false
}

// Field renders any column as a string, as written to CSV.
func (v Video) Field(column string) string {
	if s, ok := v.Text(column); ok {
		return s
	}

	switch column {
	case ColPublishedAt:
		return v.PublishedAt.String()
	case ColIsShortForm:
		return strconv.FormatBool(v.IsShortForm)
	case ColLikeRate:
		return strconv.FormatFloat(v.LikeRate, 'f', -1, 64)
	case ColCommentRate:
		return strconv.FormatFloat(v.CommentRate, 'f', -1, 64)
	}

	if n, ok := v.Number(column); ok {
		return strconv.FormatInt(int64(n), 10)
	}

	return ""
}

// Record renders the video as one row in schema order.
func (v Video) Record() []string {
	row := make([]string, len(Schema))
	for i, c := range Schema {
		row[i] = v.Field(c.Name)
	}

	return row
}

// SetField parses s as written by Field and stores it in column.
func (v *Video) SetField(column, s string) error {
	var err error

	switch column {
	case ColVideoID:
		v.VideoID = s
	case ColTitle:
		v.Title = s
	case ColChannelTitle:
		v.ChannelTitle = s
	case ColDurationFormatted:
		v.DurationFormatted = s
	case ColTags:
		v.Tags = s
	case ColThumbnailURL:
		v.ThumbnailURL = s
	case ColVideoURL:
		v.VideoURL = s
	case ColViewTier:
		v.ViewTier = ViewTier(s)
	case ColPublishedAt:
		v.PublishedAt, err = ParseTimestamp(s)
	case ColIsShortForm:
		v.IsShortForm, err = strconv.ParseBool(s)
	case ColLikeRate:
		v.LikeRate, err = strconv.ParseFloat(s, 64)
	case ColCommentRate:
		v.CommentRate, err = strconv.ParseFloat(s, 64)
	case ColViewCount:
		v.ViewCount, err = parseInt(s)
	case ColLikeCount:
		v.LikeCount, err = parseInt(s)
	case ColCommentCount:
		v.CommentCount, err = parseInt(s)
	case ColDurationSeconds:
		v.DurationSeconds, err = parseInt(s)
	case ColTagsCount:
		v.TagsCount, err = parseInt(s)
	case ColDescriptionLength:
		v.DescriptionLength, err = parseInt(s)
	case ColEngagementScore:
		v.EngagementScore, err = parseInt(s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", column, err)
	}

	return nil
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.ParseInt(s, 10, 64)
}
