package normalizer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"ytrend/internal/logger"
	"ytrend/internal/models"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(nil)
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_NormalizeAll(t *testing.T) {
	p := NewProcessor(nil)

	raws := []models.RawVideo{
		{"video_id": "a", "view_count": "10"},
		{"video_id": "b", "view_count": "20"},
		{"video_id": "c"},
	}

	table := p.NormalizeAll(raws)
	if len(table) != 3 {
		t.Fatalf("len = %d, want 3", len(table))
	}

	for i, id := range []string{"a", "b", "c"} {
		if table[i].VideoID != id {
			t.Errorf("table[%d].VideoID = %s, want %s", i, table[i].VideoID, id)
		}
	}

	if empty := p.NormalizeAll(nil); len(empty) != 0 {
		t.Errorf("NormalizeAll(nil) len = %d, want 0", len(empty))
	}
}

func TestProcessor_Process(t *testing.T) {
	var buf bytes.Buffer

	p := NewProcessor(logger.NewWriterLogger("debug", &buf))

	result := p.Process([]models.RawVideo{
		{"video_id": "a", "title": "t", "published_at": "2024-01-01T00:00:00Z", "duration": "PT1S", "view_count": "1"},
		{"video_id": "b", "title": "t", "published_at": "bad", "duration": "PT1S", "view_count": "x"},
	})

	if len(result.Table) != 2 {
		t.Fatalf("len(Table) = %d, want 2", len(result.Table))
	}

	counts := result.IssueCounts()
	if counts[models.RawPublishedAt] != 1 || counts[models.RawViewCount] != 1 {
		t.Errorf("IssueCounts = %v", counts)
	}

	if err := result.Err(); !errors.Is(err, ErrFieldUnparseable) {
		t.Errorf("Err() = %v, want ErrFieldUnparseable in chain", err)
	}

	if !strings.Contains(buf.String(), "normalized batch") {
		t.Errorf("missing batch log line: %s", buf.String())
	}
}

func TestBatchResult_Err_Nil(t *testing.T) {
	if err := (BatchResult{}).Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestNormalize_PackageLevel(t *testing.T) {
	v := Normalize(models.RawVideo{"video_id": "x", "duration": "PT2H"})
	if v.DurationFormatted != "02:00:00" {
		t.Errorf("DurationFormatted = %s, want 02:00:00", v.DurationFormatted)
	}

	table := NormalizeAll([]models.RawVideo{{"video_id": "x"}})
	if len(table) != 1 {
		t.Errorf("len = %d, want 1", len(table))
	}
}
