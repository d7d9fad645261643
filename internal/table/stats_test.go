package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ytrend/internal/models"
)

func TestSummaryStatistics_Empty(t *testing.T) {
	s := SummaryStatistics(nil)

	assert.Equal(t, Stats{}, s)
	assert.Equal(t, 0, s.TotalVideos)
	assert.Equal(t, 0.0, s.AvgViews)
}

func TestSummaryStatistics(t *testing.T) {
	src := models.Table{
		{ViewCount: 100, LikeCount: 10, CommentCount: 1, DurationSeconds: 30, IsShortForm: true, LikeRate: 10, CommentRate: 1},
		{ViewCount: 200, LikeCount: 20, CommentCount: 2, DurationSeconds: 600, LikeRate: 10, CommentRate: 1},
		{ViewCount: 400, LikeCount: 10, CommentCount: 4, DurationSeconds: 1200, LikeRate: 2.5, CommentRate: 1},
	}

	s := SummaryStatistics(src)

	assert.Equal(t, 3, s.TotalVideos)
	assert.Equal(t, 1, s.ShortFormCount)
	assert.Equal(t, 2, s.LongFormCount)
	assert.Equal(t, 233.33, s.AvgViews)
	assert.Equal(t, 200.0, s.MedianViews)
	assert.Equal(t, int64(400), s.MaxViews)
	assert.Equal(t, int64(100), s.MinViews)
	assert.Equal(t, 13.33, s.AvgLikes)
	assert.Equal(t, 2.33, s.AvgComments)
	assert.Equal(t, 610.0, s.AvgDuration)
	assert.Equal(t, 7.5, s.AvgLikeRate)
	assert.Equal(t, 1.0, s.AvgCommentRate)
}

func TestSummaryStatistics_EvenMedian(t *testing.T) {
	s := SummaryStatistics(videosWithViews(10, 40, 20, 30))

	assert.Equal(t, 25.0, s.MedianViews)
}

func TestStats_Pairs(t *testing.T) {
	pairs := SummaryStatistics(videosWithViews(5)).Pairs()

	assert.Equal(t, "total_videos", pairs[0].Key)
	assert.Equal(t, 1, pairs[0].Value)
	assert.Len(t, pairs, 21)
}
