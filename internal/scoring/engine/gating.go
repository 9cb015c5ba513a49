package engine

// Gating exclusion reasons, machine-readable, checked in priority order:
// data availability, liquidity, coverage, staleness.
const (
	ReasonNoData                = "no_data"
	ReasonInsufficientLiquidity = "insufficient_liquidity"
	ReasonInsufficientCoverage  = "insufficient_coverage"
	ReasonExcessiveStaleness    = "excessive_staleness"
)

// GateResult is the eligibility decision for one asset. Reason is empty
// when the asset is eligible, otherwise it names the first floor
// breached.
type GateResult struct {
	Eligible     bool
	Reason       string
	LiquidityUSD float64
	Coverage     float64
	StaleRatio   float64
}

// EvaluateGate decides whether an asset may appear in ranked output.
// Independent of the adjuster: an asset can carry a final score and
// still be excluded here.
func EvaluateGate(m InvestabilityMetrics, cfg GatingConfig) GateResult {
	result := GateResult{
		LiquidityUSD: m.AverageDailyValueUSD,
		Coverage:     m.Coverage,
		StaleRatio:   m.StaleRatio,
	}

	switch {
	case !m.HasData():
		result.Reason = ReasonNoData
	case m.AverageDailyValueUSD < cfg.MinADVUSD:
		result.Reason = ReasonInsufficientLiquidity
	case m.Coverage < cfg.MinCoverage:
		result.Reason = ReasonInsufficientCoverage
	case m.StaleRatio > cfg.MaxStaleRatio:
		result.Reason = ReasonExcessiveStaleness
	default:
		result.Eligible = true
	}
	return result
}
