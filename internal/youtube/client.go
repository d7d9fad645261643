// Package youtube fetches raw video records from the YouTube Data API.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"ytrend/internal/logger"
	"ytrend/internal/models"
)

const (
	// PageSize is the most results the API returns per call.
	PageSize = 50
	// requestDateLayout is the format of published-after/before bounds.
	requestDateLayout = "2006-01-02"
)

var (
	searchParts  = []string{"id", "snippet"}
	detailParts  = []string{"statistics", "contentDetails", "snippet"}
	trendingPart = []string{"id", "snippet", "statistics", "contentDetails"}
)

// Client errors.
var (
	ErrMissingAPIKey = errors.New("youtube api key is not set")
	ErrEmptyQuery    = errors.New("search query is empty")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrQuotaExceeded = errors.New("youtube api quota exceeded")
)

// Options configures a Client.
type Options struct {
	APIKey            string
	RequestsPerSecond float64
	Timeout           time.Duration
	Logger            *logger.Logger
}

// Client is a rate limited YouTube Data API client.
type Client struct {
	svc     *yt.Service
	limiter *rate.Limiter
	timeout time.Duration
	log     *logger.Logger
}

// SearchRequest describes one keyword search.
type SearchRequest struct {
	Query string
	// PublishedAfter and PublishedBefore are YYYY-MM-DD dates; empty means unbounded.
	PublishedAfter  string
	PublishedBefore string
	VideoDuration   string
	Order           string
	RegionCode      string
	AgeGroup        AgeGroup
	MaxResults      int
}

// NewClient creates a client. Extra client options are passed to the API
// service, e.g. a custom endpoint or HTTP client.
func NewClient(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*Client, error) {
	if opts.APIKey == "" && len(clientOpts) == 0 {
		return nil, ErrMissingAPIKey
	}

	if opts.APIKey != "" {
		clientOpts = append([]option.ClientOption{option.WithAPIKey(opts.APIKey)}, clientOpts...)
	}

	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		svc:     svc,
		limiter: rate.NewLimiter(limit, 1),
		timeout: opts.Timeout,
		log:     opts.Logger,
	}, nil
}

// Search runs a keyword search and returns up to MaxResults raw records with
// statistics and durations merged in.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]models.RawVideo, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	after, err := requestDate(req.PublishedAfter)
	if err != nil {
		return nil, err
	}

	before, err := requestDate(req.PublishedBefore)
	if err != nil {
		return nil, err
	}

	if req.MaxResults <= 0 {
		req.MaxResults = PageSize
	}

	query := req.AgeGroup.EnhanceQuery(req.Query)

	var (
		all       []models.RawVideo
		pageToken string
	)

	for len(all) < req.MaxResults {
		call := c.svc.Search.List(searchParts).
			Q(query).
			Type("video").
			MaxResults(int64(min(PageSize, req.MaxResults-len(all)))).
			SafeSearch(req.AgeGroup.SafeSearch())

		if req.Order != "" {
			call.Order(req.Order)
		}

		if req.VideoDuration != "" {
			call.VideoDuration(req.VideoDuration)
		}

		if req.RegionCode != "" {
			call.RegionCode(req.RegionCode)
		}

		if after != "" {
			call.PublishedAfter(after)
		}

		if before != "" {
			call.PublishedBefore(before)
		}

		if pageToken != "" {
			call.PageToken(pageToken)
		}

		var resp *yt.SearchListResponse

		err := c.do(ctx, func(ctx context.Context) error {
			var callErr error
			resp, callErr = call.Context(ctx).Do()

			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}

		if len(resp.Items) == 0 {
			break
		}

		page := make([]models.RawVideo, 0, len(resp.Items))
		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}

			page = append(page, fromSearchResult(item))
		}

		if err := c.mergeDetails(ctx, page); err != nil {
			return nil, err
		}

		all = append(all, page...)
		c.debug("fetched search page", "query", query, "page_items", len(page), "total", len(all))

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	filtered := req.AgeGroup.Filter(all)
	if len(filtered) > req.MaxResults {
		filtered = filtered[:req.MaxResults]
	}

	return filtered, nil
}

// Trending returns the most popular videos for a region. limit is capped at PageSize.
func (c *Client) Trending(ctx context.Context, region string, limit int) ([]models.RawVideo, error) {
	if limit <= 0 || limit > PageSize {
		limit = PageSize
	}

	call := c.svc.Videos.List(trendingPart).
		Chart("mostPopular").
		MaxResults(int64(limit))

	if region != "" {
		call.RegionCode(region)
	}

	var resp *yt.VideoListResponse

	err := c.do(ctx, func(ctx context.Context) error {
		var callErr error
		resp, callErr = call.Context(ctx).Do()

		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("trending %s: %w", region, err)
	}

	raws := make([]models.RawVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		raws = append(raws, fromVideo(item))
	}

	c.debug("fetched trending", "region", region, "items", len(raws))

	return raws, nil
}

// mergeDetails fetches statistics for page in batches and merges them by video id.
func (c *Client) mergeDetails(ctx context.Context, page []models.RawVideo) error {
	byID := make(map[string]models.RawVideo, len(page))
	ids := make([]string, 0, len(page))

	for _, raw := range page {
		id, _ := raw[models.RawVideoID].(string)
		byID[id] = raw
		ids = append(ids, id)
	}

	for start := 0; start < len(ids); start += PageSize {
		batch := ids[start:min(start+PageSize, len(ids))]

		var resp *yt.VideoListResponse

		err := c.do(ctx, func(ctx context.Context) error {
			var callErr error
			resp, callErr = c.svc.Videos.List(detailParts).Id(strings.Join(batch, ",")).Context(ctx).Do()

			return callErr
		})
		if err != nil {
			return fmt.Errorf("video details: %w", err)
		}

		for _, item := range resp.Items {
			raw, ok := byID[item.Id]
			if !ok {
				continue
			}

			mergeDetail(raw, item)
		}
	}

	return nil
}

// do waits for the limiter and runs fn under the client timeout.
func (c *Client) do(ctx context.Context, fn func(context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return classify(fn(ctx))
}

func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusForbidden && isQuotaError(gerr) {
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, gerr.Message)
	}

	return err
}

func isQuotaError(gerr *googleapi.Error) bool {
	for _, item := range gerr.Errors {
		if strings.Contains(item.Reason, "quota") || strings.Contains(item.Reason, "RateLimit") {
			return true
		}
	}

	return strings.Contains(strings.ToLower(gerr.Message), "quota")
}

func (c *Client) debug(msg string, args ...any) {
	if c.log != nil {
		c.log.Debug(msg, args...)
	}
}

// requestDate converts YYYY-MM-DD to RFC 3339 midnight UTC.
func requestDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}

	d, err := time.Parse(requestDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return d.UTC().Format(time.RFC3339), nil
}

func fromSearchResult(item *yt.SearchResult) models.RawVideo {
	raw := models.RawVideo{models.RawVideoID: item.Id.VideoId}

	if s := item.Snippet; s != nil {
		raw[models.RawTitle] = s.Title
		raw[models.RawDescription] = s.Description
		raw[models.RawPublishedAt] = s.PublishedAt
		raw[models.RawChannelTitle] = s.ChannelTitle
		raw[models.RawThumbnailURL] = thumbnailURL(s.Thumbnails)
	}

	return raw
}

func fromVideo(item *yt.Video) models.RawVideo {
	raw := models.RawVideo{models.RawVideoID: item.Id}

	if s := item.Snippet; s != nil {
		raw[models.RawTitle] = s.Title
		raw[models.RawDescription] = s.Description
		raw[models.RawPublishedAt] = s.PublishedAt
		raw[models.RawChannelTitle] = s.ChannelTitle
		raw[models.RawThumbnailURL] = thumbnailURL(s.Thumbnails)
	}

	mergeDetail(raw, item)

	return raw
}

// mergeDetail copies statistics, duration and tags from item into raw.
func mergeDetail(raw models.RawVideo, item *yt.Video) {
	if st := item.Statistics; st != nil {
		raw[models.RawViewCount] = clampCount(st.ViewCount)
		raw[models.RawLikeCount] = clampCount(st.LikeCount)
		raw[models.RawCommentCount] = clampCount(st.CommentCount)
	}

	if cd := item.ContentDetails; cd != nil {
		raw[models.RawDuration] = cd.Duration
	}

	if s := item.Snippet; s != nil {
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}

		raw[models.RawTags] = tags
	}
}

func clampCount(n uint64) int64 {
	const maxCount = 1<<63 - 1
	if n > maxCount {
		return maxCount
	}

	return int64(n)
}

func thumbnailURL(t *yt.ThumbnailDetails) string {
	if t == nil || t.Default == nil {
		return ""
	}

	return t.Default.Url
}
