// Package main provides the unified worker command that combines fetching, normalizing, analyzing and exporting.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"ytrend/internal/config"
	"ytrend/internal/export"
	"ytrend/internal/formatter"
	"ytrend/internal/logger"
	"ytrend/internal/models"
	"ytrend/internal/normalizer"
	"ytrend/internal/report"
	"ytrend/internal/table"
	"ytrend/internal/youtube"
)

// unset marks an integer bound flag that was not given.
const unset = -1

type options struct {
	configPath string
	query      string
	trending   bool
	region     string
	maxResults int
	ageGroup   string
	duration   string
	order      string
	inputPath  string
	saveRaw    string
	formats    string
	outputBase string

	filterFrom string
	filterTo   string
	keyword    string
	minViews   int64
	maxViews   int64
	minLikes   int64
	maxLikes   int64
	shortOnly  bool
	longOnly   bool

	sortColumn string
	sortDesc   bool
	top        int
	metric     string
	columns    string
	width      int
	withReport bool
	noExport   bool
}

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	var o options

	flag.StringVar(&o.configPath, "config", config.DefaultPath, "Path to YAML configuration file")
	flag.StringVar(&o.query, "query", "", "Search keyword")
	flag.BoolVar(&o.trending, "trending", false, "Fetch trending videos instead of searching")
	flag.StringVar(&o.region, "region", "", "Region code override (e.g. KR, US)")
	flag.IntVar(&o.maxResults, "max", 0, "Maximum results override")
	flag.StringVar(&o.ageGroup, "age-group", "", "Audience group override")
	flag.StringVar(&o.duration, "duration", "", "Video duration override (any, short, medium, long)")
	flag.StringVar(&o.order, "order", "", "Search order override")
	flag.StringVar(&o.inputPath, "input", "", "Read raw records from a JSON file instead of the API")
	flag.StringVar(&o.saveRaw, "save-raw", "", "Save fetched raw records to this JSON file")
	flag.StringVar(&o.formats, "formats", "", "Comma separated export formats override (csv, xlsx, json)")
	flag.StringVar(&o.outputBase, "name", "youtube_data", "Base name of exported files")

	flag.StringVar(&o.filterFrom, "from", "", "Keep videos published on or after YYYY-MM-DD")
	flag.StringVar(&o.filterTo, "to", "", "Keep videos published on or before YYYY-MM-DD")
	flag.StringVar(&o.keyword, "keyword", "", "Keep videos whose title or tags contain this keyword")
	flag.Int64Var(&o.minViews, "min-views", unset, "Minimum view count")
	flag.Int64Var(&o.maxViews, "max-views", unset, "Maximum view count")
	flag.Int64Var(&o.minLikes, "min-likes", unset, "Minimum like count")
	flag.Int64Var(&o.maxLikes, "max-likes", unset, "Maximum like count")
	flag.BoolVar(&o.shortOnly, "short", false, "Keep only short-form videos")
	flag.BoolVar(&o.longOnly, "long", false, "Keep only long-form videos")

	flag.StringVar(&o.sortColumn, "sort", "", "Sort by column")
	flag.BoolVar(&o.sortDesc, "desc", false, "Sort descending")
	flag.IntVar(&o.top, "top", 0, "Keep only the top N videos by -metric")
	flag.StringVar(&o.metric, "metric", models.ColViewCount, "Metric for -top")
	flag.StringVar(&o.columns, "columns", "", "Comma separated columns to print")
	flag.IntVar(&o.width, "width", 40, "Maximum printed cell width")
	flag.BoolVar(&o.withReport, "report", false, "Generate the statistical report")
	flag.BoolVar(&o.noExport, "no-export", false, "Print only, do not write files")

	flag.Parse()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	applyOverrides(cfg, o)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, o, log); err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		stop()
		log.Close()
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.Logging.File != "" {
		return logger.NewFileLogger(cfg.Logging.Level, cfg.Logging.File)
	}

	return logger.NewLogger(cfg.Logging.Level), nil
}

func applyOverrides(cfg *config.Config, o options) {
	if o.region != "" {
		cfg.Search.RegionCode = o.region
	}

	if o.maxResults > 0 {
		cfg.Search.MaxResults = o.maxResults
	}

	if o.ageGroup != "" {
		cfg.Search.AgeGroup = o.ageGroup
	}

	if o.duration != "" {
		cfg.Search.VideoDuration = o.duration
	}

	if o.order != "" {
		cfg.Search.Order = o.order
	}

	if o.formats != "" {
		cfg.Output.Formats = splitList(o.formats)
	}
}

func run(ctx context.Context, cfg *config.Config, o options, log *logger.Logger) error {
	startTime := time.Now()

	log.Info("🚀 Starting ytrend worker", "config", cfg.String())

	// 2. Ingestion
	// ------------
	log.Info("Phase 1: Ingestion...")

	raws, err := fetch(ctx, cfg, o, log)
	if err != nil {
		return err
	}

	log.Info(fmt.Sprintf("✅ Fetched %d raw records in %v", len(raws), time.Since(startTime)))

	if o.saveRaw != "" {
		if err := youtube.SaveRawFile(o.saveRaw, raws); err != nil {
			return err
		}

		log.Info("💾 Saved raw records", "path", o.saveRaw)
	}

	// 3. Processing
	// -------------
	log.Info("Phase 2: Processing (Normalization & Table Operations)...")

	result := normalizer.NewProcessor(log).Process(raws)
	if len(result.Issues) > 0 {
		log.Warn(fmt.Sprintf("⚠️  %d fields were defaulted", len(result.Issues)))
	}

	videos, err := shape(result.Table, o)
	if err != nil {
		return err
	}

	log.Info(fmt.Sprintf("✅ %d of %d videos after filtering", len(videos), len(result.Table)))

	counts := normalizer.CategoryCounts(videos)
	for _, category := range normalizer.SortedCategories(counts) {
		log.Debug("category", "name", category, "videos", counts[category])
	}

	if err := formatter.RenderTable(os.Stdout, videos, splitList(o.columns), o.width); err != nil {
		return err
	}

	stats := table.SummaryStatistics(videos)

	fmt.Println()

	if err := formatter.RenderStats(os.Stdout, stats); err != nil {
		return err
	}

	// 4. Analysis
	// -----------
	var rep *report.Report

	if o.withReport {
		log.Info("Phase 3: Analysis...")

		r := report.Generate(videos)
		rep = &r

		fmt.Println()

		if err := formatter.RenderReport(os.Stdout, r); err != nil {
			return err
		}
	}

	// 5. Export
	// ---------
	if o.noExport {
		log.Info("✨ Pipeline Complete!", "duration", time.Since(startTime))
		return nil
	}

	log.Info("Phase 4: Export...")

	exporter := export.NewExporter(cfg.Output.BasePath, export.CSVOptions{BOM: cfg.Output.CSVBOM})

	for _, format := range cfg.Output.Formats {
		path, err := exporter.SaveTable(o.outputBase, format, videos)
		if err != nil {
			return err
		}

		log.Info("📄 Exported", "format", format, "path", path)
	}

	if rep != nil {
		path, err := exporter.SaveReport(o.outputBase, *rep)
		if err != nil {
			return err
		}

		log.Info("📄 Exported report", "path", path)
	}

	log.Info("✨ Pipeline Complete!", "duration", time.Since(startTime))

	return nil
}

func fetch(ctx context.Context, cfg *config.Config, o options, log *logger.Logger) ([]models.RawVideo, error) {
	if o.inputPath != "" {
		log.Info(fmt.Sprintf("📂 Reading: %s", o.inputPath))
		return youtube.LoadRawFile(o.inputPath)
	}

	if !o.trending && o.query == "" {
		return nil, fmt.Errorf("provide -query, -trending or -input")
	}

	client, err := youtube.NewClient(ctx, youtube.Options{
		APIKey:            cfg.YouTube.APIKey,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
		Timeout:           cfg.YouTube.GetTimeout(),
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set %s or youtube.api_key)", err, config.APIKeyEnv)
	}

	if o.trending {
		log.Info(fmt.Sprintf("📍 Trending: %s", cfg.Search.RegionCode))
		return client.Trending(ctx, cfg.Search.RegionCode, cfg.Search.MaxResults)
	}

	log.Info(fmt.Sprintf("📍 Search: %q", o.query))

	return client.Search(ctx, youtube.SearchRequest{
		Query:           o.query,
		MaxResults:      cfg.Search.MaxResults,
		PublishedAfter:  o.filterFrom,
		PublishedBefore: o.filterTo,
		VideoDuration:   cfg.Search.VideoDuration,
		Order:           cfg.Search.Order,
		RegionCode:      cfg.Search.RegionCode,
		AgeGroup:        youtube.AgeGroup(cfg.Search.AgeGroup),
	})
}

// shape applies filter, sort and top-N in that order.
func shape(t models.Table, o options) (models.Table, error) {
	if err := table.ValidateDateRange(o.filterFrom, o.filterTo, time.Now()); err != nil {
		return nil, err
	}

	from, _ := table.ParseDate(o.filterFrom)
	to, _ := table.ParseDate(o.filterTo)

	t = table.Apply(t, table.Filter{
		MinViews:      bound(o.minViews),
		MaxViews:      bound(o.maxViews),
		MinLikes:      bound(o.minLikes),
		MaxLikes:      bound(o.maxLikes),
		DateFrom:      from,
		DateTo:        to,
		Keyword:       o.keyword,
		ShortFormOnly: o.shortOnly,
		LongFormOnly:  o.longOnly,
	})

	var err error

	if o.sortColumn != "" {
		t, err = table.Sort(t, o.sortColumn, !o.sortDesc)
		if err != nil {
			return nil, err
		}
	}

	if o.top > 0 {
		t, err = table.TopPerformers(t, o.metric, o.top)
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

func bound(n int64) *int64 {
	if n == unset {
		return nil
	}

	return table.Int64(n)
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
