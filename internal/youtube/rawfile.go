package youtube

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ytrend/internal/models"
)

// DecodeRaw reads a JSON array of raw video records. Numbers are kept as
// json.Number so large counts survive intact.
func DecodeRaw(r io.Reader) ([]models.RawVideo, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raws []models.RawVideo
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("failed to decode raw videos: %w", err)
	}

	return raws, nil
}

// LoadRawFile reads raw records saved by SaveRawFile or any JSON array of records.
func LoadRawFile(path string) ([]models.RawVideo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeRaw(f)
}

// SaveRawFile writes raws as an indented JSON array, creating parent directories.
func SaveRawFile(path string, raws []models.RawVideo) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if raws == nil {
		raws = []models.RawVideo{}
	}

	data, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal raw videos: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
