package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ytrend/internal/models"
	"ytrend/internal/report"
	"ytrend/internal/table"
	"ytrend/pkg/utils"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for an output format other than csv, xlsx or json.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// timestampLayout is appended to output file names.
const timestampLayout = "20060102_150405"

var text = utils.NewStringHelper()

// WriteReportJSON writes r as indented JSON.
func WriteReportJSON(w io.Writer, r report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}

// WriteTableJSON writes t as an indented JSON array.
func WriteTableJSON(w io.Writer, t models.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	return nil
}

// OutputFilename returns <clean base>_YYYYMMDD_HHMMSS<ext>.
func OutputFilename(base, ext string, now time.Time) string {
	return CleanFilename(base) + "_" + now.Format(timestampLayout) + ext
}

// CleanFilename makes name safe to use as a file name.
func CleanFilename(name string) string {
	return text.CleanFilename(name)
}

// Exporter writes tables and reports under a base directory.
type Exporter struct {
	dir  string
	now  func() time.Time
	opts CSVOptions
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string, opts CSVOptions) *Exporter {
	return &Exporter{dir: dir, now: time.Now, opts: opts}
}

// SaveTable writes t in the given format and returns the file path.
func (e *Exporter) SaveTable(base, format string, t models.Table) (string, error) {
	if format != FormatCSV && format != FormatXLSX && format != FormatJSON {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	path, err := e.path(base, "."+format)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatCSV:
		err = writeFile(path, func(w io.Writer) error { return WriteCSV(w, t, e.opts) })
	case FormatXLSX:
		err = SaveXLSX(path, t, table.SummaryStatistics(t))
	case FormatJSON:
		err = writeFile(path, func(w io.Writer) error { return WriteTableJSON(w, t) })
	}

	if err != nil {
		return "", err
	}

	return path, nil
}

// SaveReport writes r as JSON and returns the file path.
func (e *Exporter) SaveReport(base string, r report.Report) (string, error) {
	path, err := e.path(base+"_report", ".json")
	if err != nil {
		return "", err
	}

	if err := writeFile(path, func(w io.Writer) error { return WriteReportJSON(w, r) }); err != nil {
		return "", err
	}

	return path, nil
}

func (e *Exporter) path(base, ext string) (string, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	return filepath.Join(e.dir, OutputFilename(base, ext, e.now())), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
