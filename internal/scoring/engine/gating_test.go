package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateGateEligible(t *testing.T) {
	m := InvestabilityMetrics{
		AverageDailyValueUSD: 1_000_000,
		Coverage:             0.9,
		StaleRatio:           0.05,
		BarCount:             60,
	}
	result := EvaluateGate(m, DefaultGatingConfig())

	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
	assert.Equal(t, m.AverageDailyValueUSD, result.LiquidityUSD)
	assert.Equal(t, m.Coverage, result.Coverage)
	assert.Equal(t, m.StaleRatio, result.StaleRatio)
}

func TestEvaluateGateNoData(t *testing.T) {
	result := EvaluateGate(InvestabilityMetrics{}, DefaultGatingConfig())

	assert.False(t, result.Eligible)
	assert.Equal(t, ReasonNoData, result.Reason)
}

func TestEvaluateGateFloorPriorityOrder(t *testing.T) {
	cfg := DefaultGatingConfig()

	tests := []struct {
		name   string
		m      InvestabilityMetrics
		reason string
	}{
		{
			name: "liquidity floor checked before coverage",
			m: InvestabilityMetrics{
				AverageDailyValueUSD: 10_000,
				Coverage:             0.3,
				StaleRatio:           0.9,
				BarCount:             10,
			},
			reason: ReasonInsufficientLiquidity,
		},
		{
			name: "coverage floor checked before staleness",
			m: InvestabilityMetrics{
				AverageDailyValueUSD: 500_000,
				Coverage:             0.5,
				StaleRatio:           0.9,
				BarCount:             30,
			},
			reason: ReasonInsufficientCoverage,
		},
		{
			name: "staleness floor checked last",
			m: InvestabilityMetrics{
				AverageDailyValueUSD: 500_000,
				Coverage:             0.9,
				StaleRatio:           0.5,
				BarCount:             55,
			},
			reason: ReasonExcessiveStaleness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateGate(tt.m, cfg)
			assert.False(t, result.Eligible)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestEvaluateGateFloorsSitBelowCapThresholds(t *testing.T) {
	// An asset can be capped by the adjuster yet still eligible: the
	// gate floors are strictly lower than the cap thresholds.
	gateCfg := DefaultGatingConfig()
	adjCfg := DefaultAdjusterConfig()

	assert.Less(t, gateCfg.MinADVUSD, adjCfg.CapADVThresholdUSD)
	assert.Less(t, gateCfg.MinCoverage, adjCfg.CapCoverageThreshold)
	assert.Greater(t, gateCfg.MaxStaleRatio, adjCfg.CapStaleThreshold)

	m := InvestabilityMetrics{
		AverageDailyValueUSD: 100_000, // below the 250k cap, above the 50k floor
		Coverage:             0.7,     // below the 0.85 cap, above the 0.60 floor
		StaleRatio:           0.2,     // above the 0.10 cap, below the 0.40 floor
		BarCount:             45,
	}
	gate := EvaluateGate(m, gateCfg)
	adjusted := Adjust(90, m, 50, adjCfg)

	assert.True(t, gate.Eligible)
	assert.NotEmpty(t, adjusted.CapsApplied)
}
