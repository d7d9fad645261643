// Package main provides the crawler command-line tool for saving raw YouTube search results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"ytrend/internal/config"
	"ytrend/internal/export"
	"ytrend/internal/models"
	"ytrend/internal/youtube"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", config.DefaultPath, "Path to YAML configuration file")
	queries := flag.String("queries", "", "Comma separated search keywords, one raw file per keyword")
	trending := flag.Bool("trending", false, "Fetch the trending chart instead of searching")
	from := flag.String("from", "", "Published after YYYY-MM-DD")
	to := flag.String("to", "", "Published before YYYY-MM-DD")
	outputDir := flag.String("output", "", "Output directory (overrides output.base_path)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	if *outputDir != "" {
		cfg.Output.BasePath = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v\n", err)
	}

	fmt.Printf("✅ Configuration loaded: %s\n\n", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := youtube.NewClient(ctx, youtube.Options{
		APIKey:            cfg.YouTube.APIKey,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
		Timeout:           cfg.YouTube.GetTimeout(),
	})
	if err != nil {
		log.Fatalf("❌ Failed to create client: %v (set %s)\n", err, config.APIKeyEnv)
	}

	if *trending {
		raws, fetchErr := client.Trending(ctx, cfg.Search.RegionCode, cfg.Search.MaxResults)
		if fetchErr != nil {
			log.Fatalf("❌ Trending fetch failed: %v\n", fetchErr)
		}

		save(cfg.Output.BasePath, "trending_"+cfg.Search.RegionCode, raws)

		return
	}

	keywords := splitList(*queries)
	if len(keywords) == 0 {
		printUsage()
		os.Exit(1)
	}

	fmt.Printf("🚀 Processing %d queries...\n", len(keywords))

	failed := 0

	for i, keyword := range keywords {
		fmt.Printf("\n----------------------------------------------------------------\n")
		fmt.Printf("📦 Query %d/%d: %s (%s/%s)\n", i+1, len(keywords), keyword, cfg.Search.RegionCode, cfg.Search.AgeGroup)

		raws, fetchErr := client.Search(ctx, youtube.SearchRequest{
			Query:           keyword,
			PublishedAfter:  *from,
			PublishedBefore: *to,
			VideoDuration:   cfg.Search.VideoDuration,
			Order:           cfg.Search.Order,
			RegionCode:      cfg.Search.RegionCode,
			AgeGroup:        youtube.AgeGroup(cfg.Search.AgeGroup),
			MaxResults:      cfg.Search.MaxResults,
		})
		if fetchErr != nil {
			fmt.Printf("❌ Query failed: %v\n", fetchErr)

			failed++

			// The daily quota is shared, later queries would fail the same way.
			if errors.Is(fetchErr, youtube.ErrQuotaExceeded) || ctx.Err() != nil {
				break
			}

			continue
		}

		save(cfg.Output.BasePath, "search_"+keyword, raws)
	}

	if failed > 0 {
		fmt.Printf("\n⚠️  %d of %d queries failed\n", failed, len(keywords))
		os.Exit(1)
	}
}

func save(dir, base string, raws []models.RawVideo) {
	path := filepath.Join(dir, export.OutputFilename(base, "."+export.FormatJSON, time.Now()))

	if err := youtube.SaveRawFile(path, raws); err != nil {
		log.Fatalf("❌ Failed to save %s: %v\n", path, err)
	}

	fmt.Printf("💾 Saved %d raw records to %s\n", len(raws), path)
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

func printUsage() {
	fmt.Println("Usage: ./bin/crawler [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/crawler -queries 요리,캠핑 -from 2024-01-01")
	fmt.Println("  ./bin/crawler -trending -output data/raw")
	fmt.Println("  ./bin/worker -input data/raw/search_요리_20240101_120000.json -report")
}
