package engine

import "math"

// ScoreConfidence converts investability metrics into a data confidence
// value in [MinConfidence, 100]. Starts at 100 and subtracts independent
// linear penalties, each clipped to its own maximum. An asset with no
// bars at all collapses straight to the floor.
func ScoreConfidence(m InvestabilityMetrics, cfg ConfidenceConfig) int {
	if !m.HasData() {
		return cfg.MinConfidence
	}

	penalty := coveragePenalty(m.Coverage, cfg)
	penalty += advPenalty(m.AverageDailyValueUSD, cfg)
	penalty += rampPenalty(m.StaleRatio, cfg.StaleGrace, cfg.StaleCeiling, cfg.StalePenaltyMax)
	penalty += rampPenalty(m.ZeroVolumeRatio, cfg.ZeroVolumeGrace, cfg.ZeroVolumeCeiling, cfg.ZeroVolumePenaltyMax)

	confidence := int(math.Round(100 - penalty))
	if confidence < cfg.MinConfidence {
		return cfg.MinConfidence
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}

// coveragePenalty ramps from 0 at the coverage target to the full
// penalty at the coverage floor.
func coveragePenalty(coverage float64, cfg ConfidenceConfig) float64 {
	if coverage >= cfg.CoverageTarget {
		return 0
	}
	span := cfg.CoverageTarget - cfg.CoverageFloor
	if span <= 0 {
		return cfg.CoveragePenaltyMax
	}
	shortfall := (cfg.CoverageTarget - coverage) / span
	if shortfall > 1 {
		shortfall = 1
	}
	return shortfall * cfg.CoveragePenaltyMax
}

// advPenalty ramps from 0 at the ADV target down to the full penalty at
// zero traded value.
func advPenalty(adv float64, cfg ConfidenceConfig) float64 {
	if adv >= cfg.ADVTargetUSD {
		return 0
	}
	if adv < 0 {
		adv = 0
	}
	return (cfg.ADVTargetUSD - adv) / cfg.ADVTargetUSD * cfg.ADVPenaltyMax
}

// rampPenalty is a linear ramp from 0 at grace to max at ceiling, for
// ratios where higher is worse.
func rampPenalty(ratio, grace, ceiling, max float64) float64 {
	if ratio <= grace {
		return 0
	}
	if ratio >= ceiling {
		return max
	}
	return (ratio - grace) / (ceiling - grace) * max
}
