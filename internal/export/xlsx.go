package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"ytrend/internal/models"
	"ytrend/internal/table"
)

// Sheet names and the summary sheet header.
const (
	DataSheet    = "YouTube_Data"
	SummarySheet = "Summary_Stats"
	SummaryKey   = "항목"
	SummaryValue = "값"
)

// WriteXLSX writes t to a workbook with a data sheet and a summary statistics sheet.
func WriteXLSX(w io.Writer, t models.Table, stats table.Stats) error {
	f, err := buildWorkbook(t, stats)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, t models.Table, stats table.Stats) error {
	f, err := buildWorkbook(t, stats)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	return nil
}

func buildWorkbook(t models.Table, stats table.Stats) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with a single default sheet.
	if err := f.SetSheetName(f.GetSheetName(0), DataSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeRows(f, DataSheet, dataRows(t)); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	if err := writeRows(f, SummarySheet, summaryRows(stats)); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)

	return f, nil
}

func dataRows(t models.Table) [][]any {
	rows := make([][]any, 0, len(t)+1)

	header := make([]any, len(models.Schema))
	for i, c := range models.Schema {
		header[i] = c.Name
	}

	rows = append(rows, header)

	for _, v := range t {
		row := make([]any, len(models.Schema))
		for i, c := range models.Schema {
			row[i] = cellValue(v, c)
		}

		rows = append(rows, row)
	}

	return rows
}

// cellValue keeps numbers and booleans typed so spreadsheet formulas work on them.
func cellValue(v models.Video, c models.Column) any {
	switch c.Kind {
	case models.KindNumeric:
		n, _ := v.Number(c.Name)
		return n
	case models.KindBool:
		return v.IsShortForm
	default:
		return v.Field(c.Name)
	}
}

func summaryRows(stats table.Stats) [][]any {
	pairs := stats.Pairs()

	rows := make([][]any, 0, len(pairs)+1)
	rows = append(rows, []any{SummaryKey, SummaryValue})

	for _, p := range pairs {
		rows = append(rows, []any{p.Key, p.Value})
	}

	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	return nil
}
