// Package main provides the normalizer command-line tool for turning a raw video dump into a table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ytrend/internal/export"
	"ytrend/internal/logger"
	"ytrend/internal/models"
	"ytrend/internal/normalizer"
	"ytrend/internal/table"
	"ytrend/internal/youtube"
)

func main() {
	inputPath := flag.String("input", "", "Path to raw JSON file (array of video records)")
	outputPath := flag.String("output", "", "Path to output file (.csv, .json or .xlsx)")
	noBOM := flag.Bool("no-bom", false, "Write CSV without a UTF-8 byte order mark")
	verbose := flag.Bool("verbose", false, "Log every defaulted field")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Usage: normalizer -input <raw.json> -output <videos.csv|videos.json|videos.xlsx>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}

	logs := logger.NewLogger(level)

	raws, err := youtube.LoadRawFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	fmt.Printf("📂 Reading: %s (%d records)\n", *inputPath, len(raws))

	result := normalizer.NewProcessor(logs).Process(raws)

	fmt.Printf("📊 Normalized: %d videos, %d defaulted fields\n", len(result.Table), len(result.Issues))

	if *verbose {
		for _, issue := range result.Issues {
			logs.Debug("defaulted", "video_id", issue.VideoID, "field", issue.Field, "reason", issue.Err)
		}
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath), 0755); mkdirErr != nil {
		log.Fatalf("Error creating directory: %v\n", mkdirErr)
	}

	if err := write(*outputPath, result.Table, export.CSVOptions{BOM: !*noBOM}); err != nil {
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("✅ Saved to: %s\n", *outputPath)
}

func write(path string, t models.Table, opts export.CSVOptions) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return export.SaveXLSX(path, t, table.SummaryStatistics(t))
	case ".json":
		return writeWith(path, func(f *os.File) error { return export.WriteTableJSON(f, t) })
	case ".csv":
		return writeWith(path, func(f *os.File) error { return export.WriteCSV(f, t, opts) })
	default:
		return fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func writeWith(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := fn(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
