package normalizer

import (
	"testing"

	"ytrend/internal/models"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		tags     []string
		expected string
	}{
		{"Short", 45, []string{"music"}, CategoryShort},
		{"Music tag", 200, []string{"K-POP", "Cover"}, CategoryMusic},
		{"Game tag", 900, []string{"Gaming"}, CategoryGame},
		{"Food tag", 900, []string{"먹방"}, CategoryFood},
		{"Vlog tag", 900, []string{"일상 브이로그"}, CategoryVlog},
		{"Four minutes", 240, nil, CategoryShort},
		{"Medium", 1200, []string{"news"}, CategoryMedium},
		{"Long", 1201, nil, CategoryLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Category(tt.seconds, tt.tags); got != tt.expected {
				t.Errorf("Category(%d, %v) = %s, want %s", tt.seconds, tt.tags, got, tt.expected)
			}
		})
	}
}

func TestCategoryCounts(t *testing.T) {
	table := models.Table{
		{DurationSeconds: 30},
		{DurationSeconds: 600, Tags: "vlog, seoul"},
		{DurationSeconds: 3600},
		{DurationSeconds: 3600, Tags: "food"},
		{DurationSeconds: 45, Tags: "music"},
	}

	counts := CategoryCounts(table)

	expected := map[string]int{CategoryShort: 2, CategoryVlog: 1, CategoryLong: 1, CategoryFood: 1}
	if len(counts) != len(expected) {
		t.Fatalf("CategoryCounts = %v, want %v", counts, expected)
	}

	for k, want := range expected {
		if counts[k] != want {
			t.Errorf("counts[%s] = %d, want %d", k, counts[k], want)
		}
	}

	keys := SortedCategories(counts)
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("SortedCategories not sorted: %v", keys)
		}
	}
}
