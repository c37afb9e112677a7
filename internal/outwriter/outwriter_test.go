package outwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rentlens/rentlens/internal/contract"
)

func TestGetMaxTableIDWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{
			name:     "narrow terminal floors at minimum",
			width:    40,
			expected: 12,
		},
		{
			name:     "wide terminal caps at maximum",
			width:    200,
			expected: 40,
		},
		{
			name:     "mid terminal uses remaining space",
			width:    90,
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.expected, GetMaxTableIDWidth(cfg))
		})
	}
}

func TestRequireOutputFile(t *testing.T) {
	assert.ErrorIs(t, requireOutputFile(""), errParquetNeedsFile)
	assert.NoError(t, requireOutputFile("out.parquet"))
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(3)
	assert.Equal(t, "2.500", fmtFloat(2.5))
	assert.Equal(t, "%d", intFmt)
}
