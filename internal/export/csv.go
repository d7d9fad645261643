// Package export writes normalized tables and reports to files.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"ytrend/internal/models"
)

// utf8BOM marks a CSV file as UTF-8 for spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV read errors.
var (
	ErrMissingHeader = errors.New("csv has no header row")
	ErrMissingColumn = errors.New("csv is missing required column")
)

// CSVOptions controls CSV output.
type CSVOptions struct {
	// BOM prefixes the output with a UTF-8 byte order mark.
	BOM bool
}

// DefaultCSVOptions writes a BOM so Korean titles open correctly in spreadsheets.
var DefaultCSVOptions = CSVOptions{BOM: true}

// WriteCSV writes t with a header row in schema order.
func WriteCSV(w io.Writer, t models.Table, opts CSVOptions) error {
	if opts.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(models.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, v := range t {
		if err := cw.Write(v.Record()); err != nil {
			return fmt.Errorf("failed to write row %s: %w", v.VideoID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// ReadCSV parses a CSV written by WriteCSV. Columns outside the schema are
// ignored and schema columns absent from the file keep their zero value,
// except video_id which is required.
func ReadCSV(r io.Reader) (models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	hasID := false

	for i, name := range header {
		if _, ok := models.LookupColumn(name); ok {
			columns[i] = name
		}

		if name == models.ColVideoID {
			hasID = true
		}
	}

	if !hasID {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, models.ColVideoID)
	}

	t := models.Table{}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		var v models.Video
		for i, col := range columns {
			if col == "" || i >= len(row) {
				continue
			}

			if err := v.SetField(col, row[i]); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		t = append(t, v)
	}

	return t, nil
}
