package engine

import "math"

// Cap identifiers recorded in AdjustedScore.CapsApplied, in evaluation
// order.
const (
	CapLowADV         = "low_adv"
	CapLowCoverage    = "low_coverage"
	CapHighStaleRatio = "high_stale_ratio"
	CapHighZeroVolume = "high_zero_volume"
)

// AdjustedScore is the result of applying the confidence multiplier,
// liquidity penalty and hard caps to a raw score.
type AdjustedScore struct {
	ConfidenceMultiplier float64
	ScoreAfterConfidence float64
	LiquidityPenalty     float64
	ScoreAfterPenalty    float64
	CapsApplied          []string
	FinalScoreTotal      float64
}

// Adjust transforms a raw 0-100 score into an investability-aware final
// score. Pure and total: any valid numeric input produces a result,
// including floor confidence and intermediate negative scores.
//
// The super-linear confidence exponent is intentional: mediocre
// confidence suppresses the score far more than proportionally.
func Adjust(rawScore float64, m InvestabilityMetrics, confidence int, cfg AdjusterConfig) AdjustedScore {
	multiplier := math.Pow(float64(confidence)/100, cfg.ConfidenceExponent)
	afterConfidence := rawScore * multiplier

	penalty := 0.0
	if m.AverageDailyValueUSD < cfg.ADVTargetUSD {
		adv := m.AverageDailyValueUSD
		if adv < 0 {
			adv = 0
		}
		penalty = (cfg.ADVTargetUSD - adv) / cfg.ADVTargetUSD * cfg.LiquidityPenaltyMax
	}
	afterPenalty := afterConfidence - penalty

	caps := make([]string, 0, 4)
	effectiveCap := 100.0
	applyCap := func(name string, capScore float64) {
		caps = append(caps, name)
		if capScore < effectiveCap {
			effectiveCap = capScore
		}
	}
	if m.AverageDailyValueUSD < cfg.CapADVThresholdUSD {
		applyCap(CapLowADV, cfg.CapADVScore)
	}
	if m.Coverage < cfg.CapCoverageThreshold {
		applyCap(CapLowCoverage, cfg.CapCoverageScore)
	}
	if m.StaleRatio > cfg.CapStaleThreshold {
		applyCap(CapHighStaleRatio, cfg.CapStaleScore)
	}
	if m.ZeroVolumeRatio > cfg.CapZeroVolumeThreshold {
		applyCap(CapHighZeroVolume, cfg.CapZeroVolumeScore)
	}

	final := math.Min(afterPenalty, effectiveCap)
	final = clamp(final, 0, 100)

	return AdjustedScore{
		ConfidenceMultiplier: multiplier,
		ScoreAfterConfidence: afterConfidence,
		LiquidityPenalty:     penalty,
		ScoreAfterPenalty:    afterPenalty,
		CapsApplied:          caps,
		FinalScoreTotal:      final,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
