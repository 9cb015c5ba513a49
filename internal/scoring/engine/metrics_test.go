package engine

import (
	"testing"
	"time"

	"stock-quality-engine/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barSeq(closes []float64, volumes []float64) []entity.PriceBar {
	bars := make([]entity.PriceBar, len(closes))
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		bars[i] = entity.PriceBar{
			AssetID: 1,
			Date:    start.AddDate(0, 0, i),
			Close:   closes[i],
			Volume:  volumes[i],
		}
	}
	return bars
}

func TestComputeMetricsEmptyInput(t *testing.T) {
	m := ComputeMetrics(nil, 60)

	assert.Zero(t, m.AverageDailyValueUSD)
	assert.Zero(t, m.ZeroVolumeRatio)
	assert.Zero(t, m.StaleRatio)
	assert.Zero(t, m.Coverage)
	assert.False(t, m.HasData())
}

func TestComputeMetricsAverageDailyValue(t *testing.T) {
	bars := barSeq([]float64{100, 200, 300}, []float64{1000, 1000, 1000})
	m := ComputeMetrics(bars, 3)

	require.True(t, m.HasData())
	assert.InDelta(t, 200_000, m.AverageDailyValueUSD, 1e-9)
	assert.InDelta(t, 1.0, m.Coverage, 1e-9)
}

func TestComputeMetricsZeroVolumeRatio(t *testing.T) {
	bars := barSeq([]float64{10, 11, 12, 13}, []float64{0, 500, 0, 500})
	m := ComputeMetrics(bars, 4)

	assert.InDelta(t, 0.5, m.ZeroVolumeRatio, 1e-9)
}

func TestComputeMetricsStaleRatio(t *testing.T) {
	// Closes: 10, 10, 10, 12 -> two bars unchanged from their prior bar.
	bars := barSeq([]float64{10, 10, 10, 12}, []float64{1, 1, 1, 1})
	m := ComputeMetrics(bars, 4)

	assert.InDelta(t, 0.5, m.StaleRatio, 1e-9)
}

func TestComputeMetricsCoverage(t *testing.T) {
	bars := barSeq([]float64{10, 11, 12}, []float64{1, 1, 1})

	m := ComputeMetrics(bars, 6)
	assert.InDelta(t, 0.5, m.Coverage, 1e-9)

	// More bars than expected trading days clamps to full coverage.
	m = ComputeMetrics(bars, 2)
	assert.InDelta(t, 1.0, m.Coverage, 1e-9)

	// A nonsensical expected-day count yields zero coverage rather
	// than a division error.
	m = ComputeMetrics(bars, 0)
	assert.Zero(t, m.Coverage)
}
