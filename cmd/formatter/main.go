// Package main provides the formatter command-line tool for previewing exported video tables.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ytrend/internal/export"
	"ytrend/internal/formatter"
	"ytrend/internal/report"
	"ytrend/internal/table"
)

type renderOptions struct {
	columns    []string
	width      int
	stats      bool
	withReport bool
}

func main() {
	// Define command-line flags
	targetPath := flag.String("path", ".", "Path to exported CSV file or directory")
	columns := flag.String("columns", "", "Comma separated columns to print")
	width := flag.Int("width", 40, "Maximum printed cell width (0 disables truncation)")
	stats := flag.Bool("stats", true, "Print summary statistics after each table")
	withReport := flag.Bool("report", false, "Print the statistical report after each table")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	opts := renderOptions{
		columns:    splitList(*columns),
		width:      *width,
		stats:      *stats,
		withReport: *withReport,
	}

	fmt.Printf("📂 Scanning path: %s\n\n", *targetPath)

	count := 0
	errors := 0

	err := filepath.Walk(*targetPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("❌ Error accessing path %s: %v\n", path, err)

			errors++

			return nil
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != ".csv" {
			return nil
		}

		count++

		if procErr := processFile(path, opts); procErr != nil {
			fmt.Printf("❌ Failed to render %s: %v\n", path, procErr)

			errors++
		}

		return nil
	})

	if err != nil {
		log.Fatalf("❌ Error walking path: %v\n", err)
	}

	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("📈 Summary:\n")
	fmt.Printf("  Rendered: %d files\n", count-errors)
	fmt.Printf("  Errors:   %d\n", errors)

	if errors > 0 {
		os.Exit(1)
	}
}

func processFile(path string, opts renderOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := export.ReadCSV(f)
	if err != nil {
		return err
	}

	fmt.Printf("📄 %s (%d videos)\n\n", path, len(t))

	if err := formatter.RenderTable(os.Stdout, t, opts.columns, opts.width); err != nil {
		return err
	}

	if opts.stats {
		fmt.Println()

		if err := formatter.RenderStats(os.Stdout, table.SummaryStatistics(t)); err != nil {
			return err
		}
	}

	if opts.withReport {
		fmt.Println()

		if err := formatter.RenderReport(os.Stdout, report.Generate(t)); err != nil {
			return err
		}
	}

	fmt.Println()

	return nil
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
	fmt.Println("Usage: ./bin/formatter [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/formatter -path output")
	fmt.Println("  ./bin/formatter -path output/youtube_data_20240101_120000.csv -columns title,view_count -report")
}
