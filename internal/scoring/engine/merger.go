package engine

import (
	"encoding/json"
	"time"

	"stock-quality-engine/internal/entity"
)

// BreakdownVersion identifies the breakdown schema. Bump on any change
// to the feature set below.
const BreakdownVersion = "1"

// Breakdown is the audit record explaining how a final score was
// produced. Persisted as JSONB alongside the score.
type Breakdown struct {
	Version     string            `json:"version"`
	Degraded    bool              `json:"degraded,omitempty"`
	Passthrough bool              `json:"passthrough,omitempty"`
	Features    BreakdownFeatures `json:"features"`
}

// BreakdownFeatures captures every input and intermediate value of the
// adjustment pipeline.
type BreakdownFeatures struct {
	ADVUSD               float64  `json:"adv_usd"`
	Coverage             float64  `json:"coverage"`
	StaleRatio           float64  `json:"stale_ratio"`
	ZeroVolumeRatio      float64  `json:"zero_volume_ratio"`
	RawScoreTotal        float64  `json:"raw_score_total"`
	DataConfidence       int      `json:"data_confidence"`
	ConfidenceMultiplier float64  `json:"confidence_multiplier"`
	ScoreAfterConfidence float64  `json:"score_after_confidence"`
	LiquidityPenalty     float64  `json:"liquidity_penalty"`
	ScoreAfterPenalty    float64  `json:"score_after_penalty"`
	CapsApplied          []string `json:"caps_applied"`
	FinalScoreTotal      float64  `json:"final_score_total"`
}

// NewBreakdown assembles the audit record for one scoring pass.
func NewBreakdown(rawScore float64, m InvestabilityMetrics, confidence int, adj AdjustedScore) Breakdown {
	caps := adj.CapsApplied
	if caps == nil {
		caps = []string{}
	}
	return Breakdown{
		Version: BreakdownVersion,
		Features: BreakdownFeatures{
			ADVUSD:               m.AverageDailyValueUSD,
			Coverage:             m.Coverage,
			StaleRatio:           m.StaleRatio,
			ZeroVolumeRatio:      m.ZeroVolumeRatio,
			RawScoreTotal:        rawScore,
			DataConfidence:       confidence,
			ConfidenceMultiplier: adj.ConfidenceMultiplier,
			ScoreAfterConfidence: adj.ScoreAfterConfidence,
			LiquidityPenalty:     adj.LiquidityPenalty,
			ScoreAfterPenalty:    adj.ScoreAfterPenalty,
			CapsApplied:          caps,
			FinalScoreTotal:      adj.FinalScoreTotal,
		},
	}
}

// MergeScore reconciles a fresh scoring result with the previously
// persisted record. The score is always overwritten; confidence is
// monotonically non-increasing so a transient good-data run cannot
// erase a prior low-confidence flag.
func MergeScore(prev *entity.AssetScore, assetID uint, finalScore float64, confidence int, breakdown Breakdown, now time.Time) (entity.AssetScore, error) {
	merged := confidence
	if prev != nil && prev.Confidence < merged {
		merged = prev.Confidence
	}

	raw, err := json.Marshal(breakdown)
	if err != nil {
		return entity.AssetScore{}, err
	}

	return entity.AssetScore{
		AssetID:    assetID,
		ScoreTotal: finalScore,
		Confidence: merged,
		Breakdown:  raw,
		UpdatedAt:  now,
	}, nil
}
