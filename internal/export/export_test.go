package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ytrend/internal/models"
	"ytrend/internal/report"
	"ytrend/internal/table"
)

func sampleTable() models.Table {
	published, _ := time.Parse(time.RFC3339, "2024-01-06T10:00:00Z")

	return models.Table{
		{
			VideoID:           "abc",
			Title:             `김치찌개 "진짜" 레시피, 쉬움`,
			ChannelTitle:      "요리왕",
			PublishedAt:       models.NewTimestamp(published),
			ViewCount:         1_500_000,
			LikeCount:         30_000,
			CommentCount:      1_200,
			DurationSeconds:   630,
			DurationFormatted: "10:30",
			Tags:              "요리, 한식",
			TagsCount:         2,
			LikeRate:          2,
			CommentRate:       0.08,
			EngagementScore:   31_200,
			ViewTier:          models.TierHit,
			VideoURL:          models.WatchURLPrefix + "abc",
		},
		{
			VideoID:         "def",
			Title:           "short clip",
			ViewCount:       900,
			DurationSeconds: 30,
			IsShortForm:     true,
			ViewTier:        models.TierNew,
		},
	}
}

func TestWriteCSV_BOMAndHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(), DefaultCSVOptions))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	lines := strings.Split(strings.TrimPrefix(buf.String(), string(utf8BOM)), "\n")
	assert.Equal(t, strings.Join(models.ColumnNames(), ","), lines[0])
}

func TestWriteCSV_NoBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(), CSVOptions{}))

	assert.True(t, strings.HasPrefix(buf.String(), models.ColVideoID))
}

func TestCSVRoundTrip(t *testing.T) {
	src := sampleTable()

	for _, opts := range []CSVOptions{{BOM: true}, {BOM: false}} {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, src, opts))

		got, err := ReadCSV(&buf)
		require.NoError(t, err)
		require.Len(t, got, len(src))

		for i := range src {
			assert.Equal(t, src[i].VideoID, got[i].VideoID)
			assert.Equal(t, src[i].Title, got[i].Title)
			assert.Equal(t, src[i].ViewCount, got[i].ViewCount)
			assert.Equal(t, src[i].LikeCount, got[i].LikeCount)
			assert.Equal(t, src[i].IsShortForm, got[i].IsShortForm)
			assert.Equal(t, src[i].PublishedAt.Valid, got[i].PublishedAt.Valid)
		}
	}
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrMissingHeader)

	_, err = ReadCSV(strings.NewReader("title,view_count\nx,1\n"))
	require.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadCSV(strings.NewReader("video_id,view_count\nx,lots\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadCSV_SubsetAndExtraColumns(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("extra,video_id,view_count\nz,a,42\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "a", got[0].VideoID)
	assert.Equal(t, int64(42), got[0].ViewCount)
	assert.Empty(t, got[0].Title)
}

func TestWriteXLSX(t *testing.T) {
	src := sampleTable()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, src, table.SummaryStatistics(src)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DataSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.ColumnNames(), rows[0])
	assert.Equal(t, "abc", rows[1][0])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{SummaryKey, SummaryValue}, summary[0])
	assert.Equal(t, []string{"total_videos", "2"}, summary[1])
	assert.Len(t, summary, len(table.SummaryStatistics(src).Pairs())+1)
}

func TestWriteReportJSON(t *testing.T) {
	r := report.NewGenerator(report.WithIDSource(func() string { return "run-1" })).Generate(sampleTable())

	var buf bytes.Buffer
	require.NoError(t, WriteReportJSON(&buf, r))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["id"])
	assert.Contains(t, decoded, "top_analysis")
}

func TestOutputFilename(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)

	assert.Equal(t, "youtube_data_20240301_090507.csv", OutputFilename("youtube_data", ".csv", now))
	assert.Equal(t, "a_b_ c_20240301_090507.xlsx", OutputFilename("a:b?  c", ".xlsx", now))
}

func TestExporter_SaveTable(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, DefaultCSVOptions)
	e.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	for _, format := range []string{FormatCSV, FormatXLSX, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			path, err := e.SaveTable("videos", format, sampleTable())
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "videos_20240301_000000."+format), path)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	_, err := e.SaveTable("videos", "pdf", sampleTable())
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExporter_SaveReport(t *testing.T) {
	e := NewExporter(filepath.Join(t.TempDir(), "nested"), DefaultCSVOptions)
	e.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	path, err := e.SaveReport("videos", report.Generate(sampleTable()))
	require.NoError(t, err)
	assert.Equal(t, "videos_report_20240301_000000.json", filepath.Base(path))
}
