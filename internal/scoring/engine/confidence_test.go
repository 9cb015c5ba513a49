package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreConfidenceCleanLiquidAsset(t *testing.T) {
	m := InvestabilityMetrics{
		AverageDailyValueUSD: 3_000_000,
		Coverage:             0.98,
		StaleRatio:           0.01,
		ZeroVolumeRatio:      0,
		BarCount:             60,
	}
	assert.Equal(t, 100, ScoreConfidence(m, DefaultConfidenceConfig()))
}

func TestScoreConfidenceThinDataAsset(t *testing.T) {
	// Documented reference case: ADV 150k, coverage 0.75, stale 0.12,
	// zero-volume 0.08.
	m := InvestabilityMetrics{
		AverageDailyValueUSD: 150_000,
		Coverage:             0.75,
		StaleRatio:           0.12,
		ZeroVolumeRatio:      0.08,
		BarCount:             45,
	}
	confidence := ScoreConfidence(m, DefaultConfidenceConfig())
	assert.InDelta(t, 28, confidence, 2)
	assert.Equal(t, 27, confidence)
}

func TestScoreConfidenceNoDataCollapsesToFloor(t *testing.T) {
	assert.Equal(t, 5, ScoreConfidence(InvestabilityMetrics{}, DefaultConfidenceConfig()))
}

func TestScoreConfidenceWorstCaseClampsToFloor(t *testing.T) {
	m := InvestabilityMetrics{
		AverageDailyValueUSD: 0,
		Coverage:             0.01,
		StaleRatio:           1,
		ZeroVolumeRatio:      1,
		BarCount:             1,
	}
	// Penalties sum to 120; the floor holds.
	assert.Equal(t, 5, ScoreConfidence(m, DefaultConfidenceConfig()))
}

func TestScoreConfidenceRangeInvariant(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	advs := []float64{0, 10_000, 150_000, 500_000, 2_000_000, 50_000_000}
	ratios := []float64{0, 0.02, 0.05, 0.10, 0.30, 1}

	for _, adv := range advs {
		for _, coverage := range ratios {
			for _, stale := range ratios {
				for _, zeroVol := range ratios {
					m := InvestabilityMetrics{
						AverageDailyValueUSD: adv,
						Coverage:             coverage,
						StaleRatio:           stale,
						ZeroVolumeRatio:      zeroVol,
						BarCount:             30,
					}
					c := ScoreConfidence(m, cfg)
					assert.GreaterOrEqual(t, c, 5)
					assert.LessOrEqual(t, c, 100)
				}
			}
		}
	}
}

func TestScoreConfidenceMonotonicInADV(t *testing.T) {
	cfg := DefaultConfidenceConfig()
	base := InvestabilityMetrics{Coverage: 0.9, BarCount: 60}

	prev := -1
	for _, adv := range []float64{0, 100_000, 500_000, 1_000_000, 2_000_000, 5_000_000} {
		m := base
		m.AverageDailyValueUSD = adv
		c := ScoreConfidence(m, cfg)
		assert.GreaterOrEqual(t, c, prev, "confidence dropped when ADV rose to %v", adv)
		prev = c
	}
}
