package table

import (
	"time"

	"ytrend/internal/models"
)

func videosWithViews(views ...int64) models.Table {
	t := make(models.Table, len(views))
	for i, v := range views {
		t[i] = models.Video{VideoID: string(rune('a' + i)), ViewCount: v}
	}

	return t
}

func viewsOf(t models.Table) []int64 {
	out := make([]int64, len(t))
	for i, v := range t {
		out[i] = v.ViewCount
	}

	return out
}

func idsOf(t models.Table) []string {
	out := make([]string, len(t))
	for i, v := range t {
		out[i] = v.VideoID
	}

	return out
}

func at(s string) models.Timestamp {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}

	return models.NewTimestamp(ts)
}
