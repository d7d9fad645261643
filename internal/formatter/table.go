// Package formatter renders tables, statistics and reports as aligned console text.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"ytrend/internal/models"
)

const (
	// minColumnWidth is the narrowest separator, "---".
	minColumnWidth = 3
	ellipsis       = "..."
)

// DefaultColumns are shown when no columns are requested.
var DefaultColumns = []string{
	models.ColTitle,
	models.ColChannelTitle,
	models.ColViewCount,
	models.ColLikeCount,
	models.ColDurationFormatted,
	models.ColViewTier,
}

// RenderTable writes t as a pipe table with the given columns. Cells wider
// than maxWidth display columns are truncated; maxWidth <= 0 disables truncation.
func RenderTable(w io.Writer, t models.Table, columns []string, maxWidth int) error {
	if len(columns) == 0 {
		columns = DefaultColumns
	}

	for _, c := range columns {
		if _, ok := models.LookupColumn(c); !ok {
			return fmt.Errorf("%w: %q", models.ErrUnknownColumn, c)
		}
	}

	rows := make([][]string, 0, len(t)+1)
	rows = append(rows, columns)

	for _, v := range t {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = truncate(cellText(v, c), maxWidth)
		}

		rows = append(rows, row)
	}

	return writeLines(w, alignRows(rows))
}

func cellText(v models.Video, column string) string {
	col, _ := models.LookupColumn(column)
	if col.Kind == models.KindNumeric && column != models.ColLikeRate && column != models.ColCommentRate {
		n, _ := v.Number(column)
		return FormatNumber(int64(n))
	}

	return v.Field(column)
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// alignRows pads every cell to its column's display width and inserts a
// separator below the header row.
func alignRows(table [][]string) []string {
	if len(table) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)
	for i := range colWidths {
		colWidths[i] = minColumnWidth
	}

	for _, row := range table {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	result := make([]string, 0, len(table)+1)

	for i, row := range table {
		result = append(result, joinRow(row, colWidths))

		if i == 0 {
			sep := make([]string, colCount)
			for j, width := range colWidths {
				sep[j] = strings.Repeat("-", width)
			}

			result = append(result, joinRow(sep, colWidths))
		}
	}

	return result
}

func joinRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		// Pad with spaces based on display width
		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// FormatNumber compacts n to one decimal with a K, M or B suffix, e.g. 1.5M.
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return compact(n, 1_000_000_000, "B")
	case n >= 1_000_000:
		return compact(n, 1_000_000, "M")
	case n >= 1_000:
		return compact(n, 1_000, "K")
	default:
		return fmt.Sprintf("%d", n)
	}
}

func compact(n, unit int64, suffix string) string {
	return fmt.Sprintf("%.1f%s", float64(n)/float64(unit), suffix)
}
