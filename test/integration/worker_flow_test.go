package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ytrend/internal/export"
	"ytrend/internal/models"
	"ytrend/internal/normalizer"
	"ytrend/internal/report"
	"ytrend/internal/table"
	"ytrend/internal/youtube"
)

func rawFixture() []models.RawVideo {
	return []models.RawVideo{
		{
			models.RawVideoID:      "short1",
			models.RawTitle:        "Quick &amp; easy cooking",
			models.RawChannelTitle: "Kitchen",
			models.RawPublishedAt:  "2024-01-06T09:00:00Z",
			models.RawDuration:     "PT45S",
			models.RawViewCount:    "120000",
			models.RawLikeCount:    "6000",
			models.RawCommentCount: "300",
			models.RawTags:         []any{"cooking", "shorts"},
		},
		{
			models.RawVideoID:      "long1",
			models.RawTitle:        "Full cooking class",
			models.RawChannelTitle: "Kitchen",
			models.RawPublishedAt:  "2024-01-08T09:00:00Z",
			models.RawDuration:     "PT20M5S",
			models.RawViewCount:    2500000,
			models.RawLikeCount:    40000,
			models.RawCommentCount: 1200,
		},
		{
			models.RawVideoID:      "broken",
			models.RawTitle:        nil,
			models.RawPublishedAt:  "yesterday",
			models.RawDuration:     "??",
			models.RawViewCount:    "N/A",
			models.RawLikeCount:    -5,
			models.RawCommentCount: "",
		},
	}
}

func TestWorkerFlow_RawFileToExports(t *testing.T) {
	dir := t.TempDir()
	rawPath := filepath.Join(dir, "raw", "search.json")

	// Ingestion via the saved search history file
	if err := youtube.SaveRawFile(rawPath, rawFixture()); err != nil {
		t.Fatalf("SaveRawFile failed: %v", err)
	}

	raws, err := youtube.LoadRawFile(rawPath)
	if err != nil {
		t.Fatalf("LoadRawFile failed: %v", err)
	}

	// Normalization never drops records
	result := normalizer.NewProcessor(nil).Process(raws)
	if len(result.Table) != 3 {
		t.Fatalf("Expected 3 videos, got %d", len(result.Table))
	}

	if len(result.Issues) == 0 {
		t.Error("Expected defaulted fields for the broken record")
	}

	broken := result.Table[2]
	if broken.ViewCount != 0 || broken.LikeCount != 0 || broken.PublishedAt.Valid {
		t.Errorf("Broken record not defaulted: %+v", broken)
	}

	// Table operations
	shorts := table.Apply(result.Table, table.Filter{ShortFormOnly: true, MinViews: table.Int64(1)})
	if len(shorts) != 1 || shorts[0].VideoID != "short1" {
		t.Errorf("Expected only short1, got %v", shorts)
	}

	sorted, err := table.Sort(result.Table, models.ColViewCount, false)
	if err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	if sorted[0].VideoID != "long1" {
		t.Errorf("Expected long1 first, got %s", sorted[0].VideoID)
	}

	// Analysis
	rep := report.Generate(result.Table)
	if rep.Summary.TotalVideos != 3 {
		t.Errorf("Expected 3 videos in summary, got %d", rep.Summary.TotalVideos)
	}

	if rep.Basic.Error != "" || rep.Correlation.Error != "" || rep.Top.Error != "" {
		t.Errorf("Unexpected analysis errors: %q %q %q", rep.Basic.Error, rep.Correlation.Error, rep.Top.Error)
	}

	// Export
	exporter := export.NewExporter(filepath.Join(dir, "out"), export.DefaultCSVOptions)

	csvPath, err := exporter.SaveTable("cooking", export.FormatCSV, sorted)
	if err != nil {
		t.Fatalf("SaveTable csv failed: %v", err)
	}

	if _, err := exporter.SaveTable("cooking", export.FormatXLSX, sorted); err != nil {
		t.Fatalf("SaveTable xlsx failed: %v", err)
	}

	if _, err := exporter.SaveReport("cooking", rep); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", csvPath, err)
	}
	defer f.Close()

	back, err := export.ReadCSV(f)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(back) != len(sorted) {
		t.Fatalf("Expected %d rows back, got %d", len(sorted), len(back))
	}

	for i := range back {
		if back[i].VideoID != sorted[i].VideoID || back[i].ViewCount != sorted[i].ViewCount {
			t.Errorf("Row %d = %s/%d, want %s/%d", i, back[i].VideoID, back[i].ViewCount, sorted[i].VideoID, sorted[i].ViewCount)
		}
	}
}

func TestWorkerFlow_DateRange(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := table.ValidateDateRange("2024-01-07", "2024-01-31", now); err != nil {
		t.Fatalf("ValidateDateRange failed: %v", err)
	}

	from, _ := table.ParseDate("2024-01-07")
	to, _ := table.ParseDate("2024-01-31")

	videos := normalizer.NormalizeAll(rawFixture())

	got := table.Apply(videos, table.Filter{DateFrom: from, DateTo: to})
	if len(got) != 1 || got[0].VideoID != "long1" {
		t.Errorf("Expected only long1 in range, got %v", got)
	}
}
