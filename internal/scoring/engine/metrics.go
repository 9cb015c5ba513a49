package engine

import "stock-quality-engine/internal/entity"

// InvestabilityMetrics are the liquidity and data-quality features
// derived from one asset's price bars over the lookback window.
type InvestabilityMetrics struct {
	AverageDailyValueUSD float64
	ZeroVolumeRatio      float64
	StaleRatio           float64
	Coverage             float64
	BarCount             int
}

// HasData reports whether any bars were present at all.
func (m InvestabilityMetrics) HasData() bool {
	return m.BarCount > 0
}

// ComputeMetrics derives investability metrics from an ascending-by-date
// bar sequence. expectedBars is the number of trading days in the
// lookback window. Total over its input domain: an empty sequence yields
// all-zero metrics.
func ComputeMetrics(bars []entity.PriceBar, expectedBars int) InvestabilityMetrics {
	if len(bars) == 0 {
		return InvestabilityMetrics{}
	}

	var notionalSum float64
	zeroVolume := 0
	stale := 0
	for i, bar := range bars {
		notionalSum += bar.Close * bar.Volume
		if bar.Volume == 0 {
			zeroVolume++
		}
		if i > 0 && bar.Close == bars[i-1].Close {
			stale++
		}
	}

	n := float64(len(bars))
	coverage := 0.0
	if expectedBars > 0 {
		coverage = n / float64(expectedBars)
		if coverage > 1 {
			coverage = 1
		}
	}

	return InvestabilityMetrics{
		AverageDailyValueUSD: notionalSum / n,
		ZeroVolumeRatio:      float64(zeroVolume) / n,
		StaleRatio:           float64(stale) / n,
		Coverage:             coverage,
		BarCount:             len(bars),
	}
}
