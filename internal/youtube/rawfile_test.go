package youtube

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytrend/internal/models"
)

func TestRawFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "raw.json")

	raws := []models.RawVideo{
		{models.RawVideoID: "a", models.RawViewCount: int64(9_007_199_254_740_993), models.RawTags: []string{"x"}},
		{models.RawVideoID: "b", models.RawViewCount: "12"},
	}

	require.NoError(t, SaveRawFile(path, raws))

	got, err := LoadRawFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0][models.RawVideoID])
	assert.Equal(t, "9007199254740993", got[0][models.RawViewCount].(json.Number).String())
	assert.Equal(t, []any{"x"}, got[0][models.RawTags])
	assert.Equal(t, "12", got[1][models.RawViewCount])
}

func TestSaveRawFile_Nil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, SaveRawFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeRaw_Invalid(t *testing.T) {
	_, err := DecodeRaw(strings.NewReader(`{"not":"an array"}`))
	require.Error(t, err)
}

func TestLoadRawFile_Missing(t *testing.T) {
	_, err := LoadRawFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
