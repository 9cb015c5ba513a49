package engine

// ConfidenceConfig holds the penalty ramps for the data confidence score.
// Each penalty is linear between its grace threshold and its ceiling,
// clipped to its own maximum. Ramp endpoints are calibrated against
// documented reference outputs, not derived from first principles, so
// they are deliberately configurable.
type ConfidenceConfig struct {
	CoveragePenaltyMax float64 `mapstructure:"coverage_penalty_max"`
	CoverageTarget     float64 `mapstructure:"coverage_target"`
	CoverageFloor      float64 `mapstructure:"coverage_floor"`

	ADVPenaltyMax float64 `mapstructure:"adv_penalty_max"`
	ADVTargetUSD  float64 `mapstructure:"adv_target_usd"`

	StalePenaltyMax float64 `mapstructure:"stale_penalty_max"`
	StaleGrace      float64 `mapstructure:"stale_grace"`
	StaleCeiling    float64 `mapstructure:"stale_ceiling"`

	ZeroVolumePenaltyMax float64 `mapstructure:"zero_volume_penalty_max"`
	ZeroVolumeGrace      float64 `mapstructure:"zero_volume_grace"`
	ZeroVolumeCeiling    float64 `mapstructure:"zero_volume_ceiling"`

	MinConfidence int `mapstructure:"min_confidence"`
}

// DefaultConfidenceConfig returns the production penalty ramps.
func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		CoveragePenaltyMax: 40,
		CoverageTarget:     0.85,
		CoverageFloor:      0.50,

		ADVPenaltyMax: 35,
		ADVTargetUSD:  2_000_000,

		StalePenaltyMax: 25,
		StaleGrace:      0.05,
		StaleCeiling:    0.25,

		ZeroVolumePenaltyMax: 20,
		ZeroVolumeGrace:      0.02,
		ZeroVolumeCeiling:    0.08,

		MinConfidence: 5,
	}
}

// AdjusterConfig holds the multipliers, penalties and hard caps applied
// to the raw score.
type AdjusterConfig struct {
	ConfidenceExponent  float64 `mapstructure:"confidence_exponent"`
	ADVTargetUSD        float64 `mapstructure:"adv_target_usd"`
	LiquidityPenaltyMax float64 `mapstructure:"liquidity_penalty_max"`

	CapADVThresholdUSD float64 `mapstructure:"cap_adv_threshold_usd"`
	CapADVScore        float64 `mapstructure:"cap_adv_score"`

	CapCoverageThreshold float64 `mapstructure:"cap_coverage_threshold"`
	CapCoverageScore     float64 `mapstructure:"cap_coverage_score"`

	CapStaleThreshold float64 `mapstructure:"cap_stale_threshold"`
	CapStaleScore     float64 `mapstructure:"cap_stale_score"`

	CapZeroVolumeThreshold float64 `mapstructure:"cap_zero_volume_threshold"`
	CapZeroVolumeScore     float64 `mapstructure:"cap_zero_volume_score"`
}

// DefaultAdjusterConfig returns the production adjustment parameters.
func DefaultAdjusterConfig() AdjusterConfig {
	return AdjusterConfig{
		ConfidenceExponent:  1.6,
		ADVTargetUSD:        2_000_000,
		LiquidityPenaltyMax: 35,

		CapADVThresholdUSD: 250_000,
		CapADVScore:        60,

		CapCoverageThreshold: 0.85,
		CapCoverageScore:     65,

		CapStaleThreshold: 0.10,
		CapStaleScore:     55,

		CapZeroVolumeThreshold: 0.05,
		CapZeroVolumeScore:     55,
	}
}

// GatingConfig holds the hard eligibility floors. These sit below the
// adjuster cap thresholds: breaching a floor excludes the asset from
// ranking outright instead of merely capping its score.
type GatingConfig struct {
	MinADVUSD     float64 `mapstructure:"min_adv_usd"`
	MinCoverage   float64 `mapstructure:"min_coverage"`
	MaxStaleRatio float64 `mapstructure:"max_stale_ratio"`
}

// DefaultGatingConfig returns the production eligibility floors.
func DefaultGatingConfig() GatingConfig {
	return GatingConfig{
		MinADVUSD:     50_000,
		MinCoverage:   0.60,
		MaxStaleRatio: 0.40,
	}
}

// Config bundles all engine parameters.
type Config struct {
	Confidence ConfidenceConfig `mapstructure:"confidence"`
	Adjuster   AdjusterConfig   `mapstructure:"adjuster"`
	Gating     GatingConfig     `mapstructure:"gating"`
}

// DefaultConfig returns the full default engine parameterization.
func DefaultConfig() Config {
	return Config{
		Confidence: DefaultConfidenceConfig(),
		Adjuster:   DefaultAdjusterConfig(),
		Gating:     DefaultGatingConfig(),
	}
}
