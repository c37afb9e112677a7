package parquet

import (
	"path/filepath"
	"testing"
	"time"

	parquetgo "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.parquet")

	in := []KMetricRow{
		{K: 1, MeanWSS: 100.5, BestWSS: 100.5, Restarts: 10},
		{K: 2, MeanWSS: 40.25, BestWSS: 38, Restarts: 10},
	}
	require.NoError(t, WriteParquet(in, path))

	out, err := parquetgo.ReadFile[KMetricRow](path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteParquetOptionalFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.parquet")

	end := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	duration := int32(1500)
	params := `{"seed":42}`
	in := []RunRow{
		{RunID: 1, StartTime: end.Add(-time.Second), EndTime: &end, RunDurationMs: &duration, ListingsAnalyzed: 10, ListingsExcluded: 1, ConfigParams: &params},
		{RunID: 2, StartTime: end},
	}
	require.NoError(t, WriteParquet(in, path))

	out, err := parquetgo.ReadFile[RunRow](path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].RunID)
	require.NotNil(t, out[0].RunDurationMs)
	assert.Equal(t, int32(1500), *out[0].RunDurationMs)
	assert.Nil(t, out[1].EndTime)
	assert.Nil(t, out[1].ConfigParams)
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteParquet([]KMetricRow{{K: 1}}, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
